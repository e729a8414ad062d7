package formatter

import (
	"bytes"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jview/pkg/loader"
)

// YAMLFormatOptions control YAML rendering.
type YAMLFormatOptions struct {
	Indent                int
	LiteralBlockStrings   bool
	ExpandEscapedNewlines bool
}

// FormatYAML renders v as YAML, keeping member order. Multi-line strings
// can be emitted as literal blocks ("|") to preserve newlines.
func FormatYAML(v *hujson.Value, opts YAMLFormatOptions) (string, error) {
	node := ToYAMLNode(v)

	if opts.ExpandEscapedNewlines {
		expandEscapedNewlines(node)
	}
	if opts.LiteralBlockStrings {
		applyLiteralStyle(node)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToYAMLNode converts v into a yaml.v3 node tree.
func ToYAMLNode(v *hujson.Value) *yaml.Node {
	switch t := v.Value.(type) {
	case *hujson.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i := range t.Members {
			key := t.Members[i].Name.Value.(hujson.Literal).String()
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				ToYAMLNode(&t.Members[i].Value))
		}
		return n
	case *hujson.Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := range t.Elements {
			n.Content = append(n.Content, ToYAMLNode(&t.Elements[i]))
		}
		return n
	}

	switch loader.KindOf(v) {
	case loader.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: loader.StringValue(v)}
	case loader.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: loader.ScalarText(v)}
	case loader.KindNumber:
		text := loader.NumberText(v)
		switch text {
		case "NaN":
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".nan"}
		case "Infinity":
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".inf"}
		case "-Infinity":
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: "-.inf"}
		}
		tag := "!!float"
		if !strings.ContainsAny(text, ".eE") {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func applyLiteralStyle(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	for _, c := range n.Content {
		applyLiteralStyle(c)
	}
}

func expandEscapedNewlines(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\\n") {
		n.Value = strings.ReplaceAll(n.Value, "\\n", "\n")
	}
	for _, c := range n.Content {
		expandEscapedNewlines(c)
	}
}
