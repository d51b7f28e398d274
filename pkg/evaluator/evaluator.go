// Package evaluator evaluates single-variable formulas such as
// "sin(x)^2 + cos(x)^2" at a point.
//
// Every letter that is not a function name or a constant (e, pi) binds to
// the evaluation point. An Evaluator keeps only the normalized text and
// its options; each call lexes, parses and evaluates from scratch, so an
// Evaluator is safe for concurrent use.
package evaluator

import (
	"github.com/wildfunctions/fxeval/pkg/expr"
	"github.com/wildfunctions/fxeval/pkg/parse"
)

// Evaluator evaluates one formula.
type Evaluator struct {
	formula string
	degree  bool
	opts    parse.Options
}

// Option customizes an Evaluator.
type Option func(*Evaluator)

// WithMaxDepth bounds parser recursion. Values <= 0 select
// parse.DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) { e.opts.MaxDepth = n }
}

// WithPower selects how '^' binds. The default is parse.PowerLeft.
func WithPower(p parse.Power) Option {
	return func(e *Evaluator) { e.opts.Power = p }
}

// New returns an Evaluator for formula. degree selects degree mode for the
// trigonometric functions. The formula is not validated until evaluation.
func New(formula string, degree bool, opts ...Option) *Evaluator {
	e := &Evaluator{
		formula: parse.Normalize(formula),
		degree:  degree,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Formula returns the normalized formula.
func (e *Evaluator) Formula() string { return e.formula }

// Degree reports whether degree mode is on.
func (e *Evaluator) Degree() bool { return e.degree }

// Power returns the configured power mode.
func (e *Evaluator) Power() parse.Power { return e.opts.Power }

// Parse returns a freshly built tree for the formula.
func (e *Evaluator) Parse() (expr.ExprNode, error) {
	return parse.Parse(e.formula, e.opts)
}

// EvaluateAt evaluates the formula with the free variable bound to x.
// The error, if any, is a *Error matching one of the Err sentinels.
func (e *Evaluator) EvaluateAt(x float64) (float64, error) {
	node, err := e.Parse()
	if err != nil {
		return 0, err
	}
	return node.Eval(expr.Env{X: x, Degree: e.degree}), nil
}

// Evaluate evaluates formula in degree mode at x = 0.
func Evaluate(formula string) (float64, error) {
	return New(formula, true).EvaluateAt(0)
}
