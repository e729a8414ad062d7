package formatter

import (
	"fmt"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/jview/pkg/loader"
)

const (
	// defaultMaxArrayInline is the max number of array elements to show inline.
	defaultMaxArrayInline = 3
)

// TreeOptions controls tree output formatting.
type TreeOptions struct {
	// NoValues hides values at leaf nodes (structure only).
	NoValues bool
	// MaxDepth limits tree depth (0 = unlimited).
	MaxDepth int
	// ExpandArrays shows all array elements instead of "[N items]" summary.
	ExpandArrays bool
	// MaxArrayInline is max items to show inline for scalar arrays (default 3).
	MaxArrayInline int
	// MaxStringLen is max chars before truncating inline strings.
	// 0 or negative = no truncation (unlimited).
	MaxStringLen int
	// ArrayStyle controls how array indices are displayed:
	// "index" = [0], [1]; "numbered" = 1, 2; "bullet" = •; "none" = skip index.
	ArrayStyle string
}

// ValidArrayStyles contains all valid array style values.
var ValidArrayStyles = []string{"index", "numbered", "bullet", "none"}

// ValidateArrayStyle returns an error if the style is invalid.
func ValidateArrayStyle(style string) error {
	if style == "" {
		return nil
	}
	for _, valid := range ValidArrayStyles {
		if style == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid array-style %q: valid values are index, numbered, bullet, none", style)
}

// FormatArrayIndex formats an array index based on style.
func FormatArrayIndex(i int, style string) string {
	switch style {
	case "numbered":
		return fmt.Sprintf("%d", i+1)
	case "bullet":
		return "•"
	case "none":
		return ""
	default:
		return fmt.Sprintf("[%d]", i)
	}
}

// formatKeyValue joins key and value; an empty key yields just the value.
func formatKeyValue(key, value string) string {
	if key == "" {
		return value
	}
	return key + ": " + value
}

func formatKeyOnly(key string) string {
	if key == "" {
		return "(item)"
	}
	return key
}

// FormatAsTree renders v as a static tree headed by name. Objects become
// branches in member order, arrays show indexed children, and scalars are
// displayed inline at leaves.
func FormatAsTree(name string, v *hujson.Value, opts TreeOptions) string {
	if opts.MaxArrayInline == 0 {
		opts.MaxArrayInline = defaultMaxArrayInline
	}

	tree := treeprint.NewWithRoot(name)
	switch v.Value.(type) {
	case *hujson.Object, *hujson.Array:
		buildTree(tree, v, opts, 0)
	default:
		tree.AddNode(formatScalarValue(v, opts))
	}
	return tree.String()
}

func buildTree(branch treeprint.Tree, v *hujson.Value, opts TreeOptions, depth int) {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		branch.AddNode("...")
		return
	}

	switch t := v.Value.(type) {
	case *hujson.Object:
		for i := range t.Members {
			key := t.Members[i].Name.Value.(hujson.Literal).String()
			addNodeForValue(branch, key, &t.Members[i].Value, opts, depth)
		}
	case *hujson.Array:
		for i := range t.Elements {
			addNodeForValue(branch, FormatArrayIndex(i, opts.ArrayStyle), &t.Elements[i], opts, depth)
		}
	}
}

func addNodeForValue(branch treeprint.Tree, key string, v *hujson.Value, opts TreeOptions, depth int) {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		branch.AddNode(formatKeyValue(key, "..."))
		return
	}

	switch loader.KindOf(v) {
	case loader.KindObject:
		if loader.Len(v) == 0 {
			addLeaf(branch, key, "{}", opts)
			return
		}
		child := branch.AddBranch(formatKeyOnly(key))
		buildTree(child, v, opts, depth+1)
	case loader.KindArray:
		addArrayNode(branch, key, v, opts, depth)
	default:
		addLeaf(branch, key, formatScalarValue(v, opts), opts)
	}
}

func addLeaf(branch treeprint.Tree, key, value string, opts TreeOptions) {
	if opts.NoValues {
		branch.AddNode(formatKeyOnly(key))
		return
	}
	branch.AddNode(formatKeyValue(key, value))
}

// addArrayNode inlines short scalar arrays, summarizes long ones, and
// expands everything else.
func addArrayNode(branch treeprint.Tree, key string, v *hujson.Value, opts TreeOptions, depth int) {
	arr := v.Value.(*hujson.Array)
	n := len(arr.Elements)
	switch {
	case n == 0:
		addLeaf(branch, key, "[]", opts)
	case !opts.ExpandArrays && isScalarArray(arr) && n <= opts.MaxArrayInline:
		addLeaf(branch, key, formatInlineArray(arr), opts)
	case !opts.ExpandArrays && isScalarArray(arr):
		addLeaf(branch, key, fmt.Sprintf("[%d items]", n), opts)
	default:
		child := branch.AddBranch(formatKeyOnly(key))
		buildTree(child, v, opts, depth+1)
	}
}

func isScalarArray(arr *hujson.Array) bool {
	for i := range arr.Elements {
		switch loader.KindOf(&arr.Elements[i]) {
		case loader.KindObject, loader.KindArray:
			return false
		}
	}
	return true
}

func formatInlineArray(arr *hujson.Array) string {
	parts := make([]string, len(arr.Elements))
	for i := range arr.Elements {
		parts[i] = loader.ScalarText(&arr.Elements[i])
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatScalarValue renders a scalar, truncated to MaxStringLen when set.
func formatScalarValue(v *hujson.Value, opts TreeOptions) string {
	s := loader.ScalarText(v)
	maxLen := opts.MaxStringLen
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
