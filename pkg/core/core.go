// Package core applies the per-document transforms shared by the CLI and
// embedders: embedded decoding, a CEL projection and record limiting.
package core

import (
	"errors"
	"fmt"

	"github.com/tailscale/hujson"

	"github.com/oakwood-commons/jview/internal/cel"
	"github.com/oakwood-commons/jview/internal/limiter"
	"github.com/oakwood-commons/jview/pkg/loader"
)

// ErrInvalidExpression wraps compile failures of the configured expression.
var ErrInvalidExpression = errors.New("invalid expression")

// Evaluator projects a document value onto a new one.
type Evaluator interface {
	Eval(v *hujson.Value) (hujson.Value, error)
}

// Engine transforms loaded documents before they are viewed.
type Engine struct {
	Evaluator Evaluator
	Decode    bool
	Limit     limiter.Config

	expression string
}

// Option configures the Engine.
type Option func(*Engine)

// WithEvaluator sets a custom evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(c *Engine) {
		c.Evaluator = e
	}
}

// WithExpression compiles expr as a CEL program when the engine is built.
// An empty expression leaves documents as they are.
func WithExpression(expr string) Option {
	return func(c *Engine) {
		c.expression = expr
	}
}

// WithDecode expands string values that hold serialized documents.
func WithDecode(decode bool) Option {
	return func(c *Engine) {
		c.Decode = decode
	}
}

// WithLimit trims the top level of every document to a window of records.
func WithLimit(l limiter.Config) Option {
	return func(c *Engine) {
		c.Limit = l
	}
}

// New creates an Engine.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{}
	for _, opt := range opts {
		opt(engine)
	}
	if err := engine.Limit.Validate(); err != nil {
		return nil, err
	}
	if engine.Evaluator == nil && engine.expression != "" {
		eval, err := cel.NewEvaluator()
		if err != nil {
			return nil, err
		}
		prg, err := eval.Compile(engine.expression)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
		}
		engine.Evaluator = prg
	}
	return engine, nil
}

// Transform rewrites doc.Value in place. It must run before the document
// is added to an Arena.
func (e *Engine) Transform(doc *loader.Document) error {
	if e.Decode {
		loader.DecodeEmbedded(&doc.Value)
	}
	if e.Evaluator != nil {
		v, err := e.Evaluator.Eval(&doc.Value)
		if err != nil {
			return err
		}
		doc.Value = v
	}
	doc.Value = e.Limit.Apply(doc.Value)
	return nil
}
