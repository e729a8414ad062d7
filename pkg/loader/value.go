package loader

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

// Kind classifies a parsed value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "dictionary"
	case KindArray:
		return "list"
	default:
		return "null"
	}
}

// Raw literals used for non-finite numbers. hujson writes literals verbatim
// when packing, so these survive a round trip through Value.Pack.
var (
	literalNaN    = hujson.Literal("NaN")
	literalInf    = hujson.Literal("Infinity")
	literalNegInf = hujson.Literal("-Infinity")
)

// IsSpecialNumber reports whether lit is one of NaN, Infinity or -Infinity.
func IsSpecialNumber(lit hujson.Literal) bool {
	switch string(lit) {
	case "NaN", "Infinity", "-Infinity":
		return true
	}
	return false
}

// KindOf returns the kind of v. A nil value is treated as null.
func KindOf(v *hujson.Value) Kind {
	if v == nil {
		return KindNull
	}
	switch t := v.Value.(type) {
	case *hujson.Object:
		return KindObject
	case *hujson.Array:
		return KindArray
	case hujson.Literal:
		if IsSpecialNumber(t) {
			return KindNumber
		}
		switch t.Kind() {
		case 't', 'f':
			return KindBool
		case '"':
			return KindString
		case '0':
			return KindNumber
		}
	}
	return KindNull
}

// Len returns the number of members or elements of a container, and 0 for scalars.
func Len(v *hujson.Value) int {
	switch t := v.Value.(type) {
	case *hujson.Object:
		return len(t.Members)
	case *hujson.Array:
		return len(t.Elements)
	}
	return 0
}

// StringValue returns the unescaped text of a string literal.
func StringValue(v *hujson.Value) string {
	if lit, ok := v.Value.(hujson.Literal); ok {
		return lit.String()
	}
	return ""
}

// BoolValue returns the value of a boolean literal.
func BoolValue(v *hujson.Value) bool {
	if lit, ok := v.Value.(hujson.Literal); ok {
		return lit.Kind() == 't'
	}
	return false
}

// NumberText renders a number literal in canonical form: integers in plain
// decimal, other finite values in the shortest form that round trips (with
// ".0" kept on integral floats), and non-finite values as NaN, Infinity or
// -Infinity.
func NumberText(v *hujson.Value) string {
	lit, ok := v.Value.(hujson.Literal)
	if !ok {
		return ""
	}
	if IsSpecialNumber(lit) {
		return string(lit)
	}
	s := string(lit)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return strconv.FormatUint(u, 10)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return s
	}
	out := string(hujson.Float(f))
	if !strings.ContainsAny(out, ".eE") {
		out += ".0"
	}
	return out
}

// NumberLiteral builds a number literal for f, using the raw non-finite
// literals instead of the quoted strings hujson.Float would produce.
func NumberLiteral(f float64) hujson.Literal {
	switch {
	case math.IsNaN(f):
		return literalNaN
	case math.IsInf(f, 1):
		return literalInf
	case math.IsInf(f, -1):
		return literalNegInf
	}
	return hujson.Float(f)
}

// ScalarText is the display text of a scalar: strings unquoted, numbers
// canonical, and booleans and null as their keywords. Containers render as
// their kind name.
func ScalarText(v *hujson.Value) string {
	switch KindOf(v) {
	case KindString:
		return StringValue(v)
	case KindNumber:
		return NumberText(v)
	case KindBool:
		if BoolValue(v) {
			return "true"
		}
		return "false"
	case KindObject, KindArray:
		return KindOf(v).String()
	default:
		return "null"
	}
}

func newObject(members []hujson.ObjectMember) hujson.Value {
	return hujson.Value{Value: &hujson.Object{Members: members}}
}

func newArray(elems []hujson.Value) hujson.Value {
	return hujson.Value{Value: &hujson.Array{Elements: elems}}
}

func member(name string, v hujson.Value) hujson.ObjectMember {
	return hujson.ObjectMember{Name: hujson.Value{Value: hujson.String(name)}, Value: v}
}

// ToAny converts v into plain Go values: map[string]any, []any, string,
// bool, int64 or float64, and nil.
func ToAny(v *hujson.Value) any {
	switch t := v.Value.(type) {
	case *hujson.Object:
		out := make(map[string]any, len(t.Members))
		for i := range t.Members {
			out[t.Members[i].Name.Value.(hujson.Literal).String()] = ToAny(&t.Members[i].Value)
		}
		return out
	case *hujson.Array:
		out := make([]any, len(t.Elements))
		for i := range t.Elements {
			out[i] = ToAny(&t.Elements[i])
		}
		return out
	}
	switch KindOf(v) {
	case KindString:
		return StringValue(v)
	case KindBool:
		return BoolValue(v)
	case KindNumber:
		lit := v.Value.(hujson.Literal)
		switch string(lit) {
		case "NaN":
			return math.NaN()
		case "Infinity":
			return math.Inf(1)
		case "-Infinity":
			return math.Inf(-1)
		}
		if i, err := strconv.ParseInt(string(lit), 10, 64); err == nil {
			return i
		}
		return lit.Float()
	}
	return nil
}

// FromAny converts plain Go values into a hujson value. Map keys are sorted
// because Go maps carry no order.
func FromAny(x any) (hujson.Value, error) {
	switch t := x.(type) {
	case nil:
		return hujson.Value{Value: hujson.Literal("null")}, nil
	case hujson.Value:
		return t, nil
	case bool:
		return hujson.Value{Value: hujson.Bool(t)}, nil
	case string:
		return hujson.Value{Value: hujson.String(t)}, nil
	case int:
		return hujson.Value{Value: hujson.Int(int64(t))}, nil
	case int32:
		return hujson.Value{Value: hujson.Int(int64(t))}, nil
	case int64:
		return hujson.Value{Value: hujson.Int(t)}, nil
	case uint:
		return hujson.Value{Value: hujson.Uint(uint64(t))}, nil
	case uint32:
		return hujson.Value{Value: hujson.Uint(uint64(t))}, nil
	case uint64:
		return hujson.Value{Value: hujson.Uint(t)}, nil
	case float32:
		return hujson.Value{Value: NumberLiteral(float64(t))}, nil
	case float64:
		return hujson.Value{Value: NumberLiteral(t)}, nil
	case time.Time:
		return hujson.Value{Value: hujson.String(t.Format(time.RFC3339Nano))}, nil
	case []byte:
		return hujson.Value{Value: hujson.String(string(t))}, nil
	case []any:
		elems := make([]hujson.Value, 0, len(t))
		for i, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return hujson.Value{}, fmt.Errorf("element [%d]: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return newArray(elems), nil
	case []string:
		elems := make([]hujson.Value, 0, len(t))
		for _, e := range t {
			elems = append(elems, hujson.Value{Value: hujson.String(e)})
		}
		return newArray(elems), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]hujson.ObjectMember, 0, len(keys))
		for _, k := range keys {
			mv, err := FromAny(t[k])
			if err != nil {
				return hujson.Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			members = append(members, member(k, mv))
		}
		return newObject(members), nil
	case map[any]any:
		conv := make(map[string]any, len(t))
		for k, v := range t {
			conv[fmt.Sprint(k)] = v
		}
		return FromAny(conv)
	case fmt.Stringer:
		return hujson.Value{Value: hujson.String(t.String())}, nil
	default:
		return hujson.Value{}, fmt.Errorf("unsupported value type %T", x)
	}
}
