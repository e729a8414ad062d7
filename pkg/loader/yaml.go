package loader

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

const maxAliasDepth = 64

// loadYAML parses one or more YAML documents. A single document becomes the
// root value; several documents become a list root.
func loadYAML(input string) (hujson.Value, error) {
	decoder := yaml.NewDecoder(strings.NewReader(input))
	var docs []hujson.Value
	for {
		var node yaml.Node
		if err := decoder.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return hujson.Value{}, fmt.Errorf("invalid YAML: %w", err)
		}
		if len(node.Content) == 0 {
			continue
		}
		v, err := yamlNodeToValue(&node, 0)
		if err != nil {
			return hujson.Value{}, fmt.Errorf("invalid YAML: %w", err)
		}
		docs = append(docs, v)
	}
	switch len(docs) {
	case 0:
		return hujson.Value{}, fmt.Errorf("no documents found in YAML input")
	case 1:
		return docs[0], nil
	default:
		return newArray(docs), nil
	}
}

// yamlNodeToValue converts a yaml.v3 node into an ordered hujson value.
func yamlNodeToValue(node *yaml.Node, depth int) (hujson.Value, error) {
	if depth > maxAliasDepth {
		return hujson.Value{}, fmt.Errorf("YAML nesting too deep at line %d", node.Line)
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return hujson.Value{Value: hujson.Literal("null")}, nil
		}
		return yamlNodeToValue(node.Content[0], depth+1)
	case yaml.MappingNode:
		members := make([]hujson.ObjectMember, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := yamlNodeToValue(node.Content[i+1], depth+1)
			if err != nil {
				return hujson.Value{}, err
			}
			members = append(members, member(node.Content[i].Value, v))
		}
		return newObject(members), nil
	case yaml.SequenceNode:
		elems := make([]hujson.Value, 0, len(node.Content))
		for _, c := range node.Content {
			v, err := yamlNodeToValue(c, depth+1)
			if err != nil {
				return hujson.Value{}, err
			}
			elems = append(elems, v)
		}
		return newArray(elems), nil
	case yaml.AliasNode:
		if node.Alias == nil {
			return hujson.Value{Value: hujson.Literal("null")}, nil
		}
		return yamlNodeToValue(node.Alias, depth+1)
	case yaml.ScalarNode:
		return yamlScalar(node)
	}
	return hujson.Value{}, fmt.Errorf("unsupported YAML node kind %d at line %d", node.Kind, node.Line)
}

func yamlScalar(node *yaml.Node) (hujson.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return hujson.Value{Value: hujson.Literal("null")}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return hujson.Value{}, err
		}
		return hujson.Value{Value: hujson.Bool(b)}, nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return hujson.Value{Value: hujson.Int(i)}, nil
		}
		var u uint64
		if err := node.Decode(&u); err == nil {
			return hujson.Value{Value: hujson.Uint(u)}, nil
		}
		return hujson.Value{Value: hujson.String(node.Value)}, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			if parsed, perr := strconv.ParseFloat(node.Value, 64); perr == nil {
				f = parsed
			} else {
				return hujson.Value{}, err
			}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return hujson.Value{Value: NumberLiteral(f)}, nil
		}
		return hujson.Value{Value: hujson.Float(f)}, nil
	}
	return hujson.Value{Value: hujson.String(node.Value)}, nil
}
