// Package loader parses JSON and related inputs into ordered hujson values
// and keeps the loaded documents alive for the rest of the session.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
)

// StdinName is the document name used for data read from standard input.
const StdinName = "(stdin)"

// ErrEmptyInput is returned when the input holds nothing but whitespace.
var ErrEmptyInput = errors.New("empty input")

// Format identifies an input syntax.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatNDJSON Format = "ndjson"
	FormatJWT    Format = "jwt"
)

// ParseFormat maps a flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json", "jsonc", "hujson", "jwcc":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	case "jwt":
		return FormatJWT, nil
	}
	return "", fmt.Errorf("unknown format %q (expected auto, json, yaml, toml, ndjson or jwt)", s)
}

// FormatFromPath guesses the format from a file extension, falling back to auto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc", ".hujson", ".json5":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".jwt":
		return FormatJWT
	}
	return FormatAuto
}

// Document is one loaded input.
type Document struct {
	Name   string
	Format Format
	Size   int64
	Value  hujson.Value
}

// Arena owns every loaded document. Documents are never moved or changed
// once added, so pointers into their values stay valid.
type Arena struct {
	docs []*Document
}

// Add appends doc and returns it.
func (a *Arena) Add(doc *Document) *Document {
	a.docs = append(a.docs, doc)
	return doc
}

// Documents returns the documents in load order.
func (a *Arena) Documents() []*Document {
	return a.docs
}

// Len returns the number of documents.
func (a *Arena) Len() int {
	return len(a.docs)
}

// Sizes returns the input size in bytes for every document, keyed by name.
func (a *Arena) Sizes() map[string]int64 {
	out := make(map[string]int64, len(a.docs))
	for _, d := range a.docs {
		out[d.Name] = d.Size
	}
	return out
}

// LoadFile reads and parses the file at path.
func LoadFile(path string, format Format) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if format == FormatAuto {
		format = FormatFromPath(path)
	}
	return Parse(path, data, format)
}

// LoadReader reads r to the end and parses it under name.
func LoadReader(name string, r io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return Parse(name, data, format)
}

// Parse parses data as format. FormatAuto detects the syntax.
func Parse(name string, data []byte, format Format) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}
	doc := &Document{Name: name, Size: int64(len(data))}
	var err error
	if format == FormatAuto {
		doc.Value, doc.Format, err = detect(string(data))
	} else {
		doc.Format = format
		doc.Value, err = parseAs(string(data), format)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func parseAs(input string, format Format) (hujson.Value, error) {
	switch format {
	case FormatJSON:
		v, err := parseJSON([]byte(input))
		if err != nil {
			return hujson.Value{}, fmt.Errorf("invalid JSON: %w", err)
		}
		return v, nil
	case FormatYAML:
		return loadYAML(input)
	case FormatTOML:
		return loadTOML(input)
	case FormatNDJSON:
		return loadNDJSON(input)
	case FormatJWT:
		return DecodeJWT(input)
	}
	return hujson.Value{}, fmt.Errorf("unsupported format %q", format)
}

// detect tries the supported syntaxes in order:
// JWT, JSON (objects and arrays), NDJSON, multi-document YAML, TOML,
// JSON scalars, and finally YAML.
func detect(input string) (hujson.Value, Format, error) {
	trimmed := strings.TrimSpace(input)

	if IsJWT(trimmed) {
		v, err := DecodeJWT(trimmed)
		return v, FormatJWT, err
	}

	lines := strings.Split(trimmed, "\n")
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		v, jsonErr := parseJSON([]byte(input))
		if jsonErr == nil {
			return v, FormatJSON, nil
		}
		if isLikelyNDJSON(lines) {
			if v, err := loadNDJSON(trimmed); err == nil {
				return v, FormatNDJSON, nil
			}
		}
		// TOML [section] headers look like JSON arrays.
		if isLikelyTOML(trimmed) {
			if v, err := loadTOML(trimmed); err == nil {
				return v, FormatTOML, nil
			}
		}
		return hujson.Value{}, FormatJSON, fmt.Errorf("invalid JSON: %w", jsonErr)
	}

	if strings.Contains(trimmed, "\n---") || strings.HasPrefix(trimmed, "---") {
		v, err := loadYAML(trimmed)
		return v, FormatYAML, err
	}

	if isLikelyTOML(trimmed) {
		v, err := loadTOML(trimmed)
		return v, FormatTOML, err
	}

	if v, err := parseJSON([]byte(input)); err == nil {
		return v, FormatJSON, nil
	}

	v, err := loadYAML(trimmed)
	return v, FormatYAML, err
}

// loadNDJSON parses newline-delimited JSON into a list root.
// Lines that are not valid JSON are kept as plain strings.
func loadNDJSON(input string) (hujson.Value, error) {
	lines := strings.Split(input, "\n")
	elems := make([]hujson.Value, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := parseJSON([]byte(line))
		if err != nil {
			elems = append(elems, hujson.Value{Value: hujson.String(line)})
			continue
		}
		elems = append(elems, v)
	}

	if len(elems) == 0 {
		return hujson.Value{}, fmt.Errorf("no data found in input")
	}
	return newArray(elems), nil
}

// isLikelyNDJSON heuristic: returns true if the input looks like newline-delimited JSON.
// A majority of non-empty lines must start with '{' or '['.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}

	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

var (
	// Section headers: [server], [[items]], ["table name"], [database.credentials].
	// JSON arrays like [1, 2, 3] do not match.
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// key = value, as opposed to YAML's key: value.
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// isLikelyTOML heuristic: section headers, or a majority of key = value lines.
func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++

		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}

	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}

// loadTOML parses a TOML document. Tables come back from go-toml as maps,
// so their keys are sorted.
func loadTOML(input string) (hujson.Value, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return hujson.Value{}, fmt.Errorf("invalid TOML: %w", err)
	}
	v, err := FromAny(data)
	if err != nil {
		return hujson.Value{}, fmt.Errorf("invalid TOML: %w", err)
	}
	return v, nil
}
