// Package cel projects documents through CEL expressions. The document is
// bound to the variable "_", so "_.items.filter(x, x.ok)" selects part of it.
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
	"github.com/tailscale/hujson"

	"github.com/oakwood-commons/jview/pkg/loader"
)

// Evaluator compiles CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates a new CEL evaluator with the standard extensions.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Program is a compiled expression that can be applied to many documents.
type Program struct {
	expr string
	prg  cel.Program
}

// Compile parses and type checks expr.
func (e *Evaluator) Compile(expr string) (*Program, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Program) String() string {
	return p.expr
}

// Eval runs the program against v and returns the result as a new value.
// Objects produced by CEL come back with sorted keys.
func (p *Program) Eval(v *hujson.Value) (hujson.Value, error) {
	result, _, err := p.prg.Eval(map[string]any{"_": loader.ToAny(v)})
	if err != nil {
		return hujson.Value{}, fmt.Errorf("eval error: %w", err)
	}
	out, err := loader.FromAny(ToGo(result))
	if err != nil {
		return hujson.Value{}, fmt.Errorf("converting result of %q: %w", p.expr, err)
	}
	return out, nil
}

// Evaluate compiles expr and runs it against v.
func (e *Evaluator) Evaluate(expr string, v *hujson.Value) (hujson.Value, error) {
	p, err := e.Compile(expr)
	if err != nil {
		return hujson.Value{}, err
	}
	return p.Eval(v)
}

// ToGo converts CEL values to plain Go values recursively.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case types.Null:
		return nil
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	}

	valuer, ok := val.(interface{ Value() any })
	if !ok {
		return val
	}
	return fromNative(valuer.Value())
}

// fromNative unwraps the values CEL collections hand back, which mix
// ref.Val and native Go types.
func fromNative(x any) any {
	switch t := x.(type) {
	case ref.Val:
		return ToGo(t)
	case []ref.Val:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = ToGo(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = fromNative(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = fromNative(e)
		}
		return out
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(ToGo(k))] = ToGo(e)
		}
		return out
	}
	return x
}
