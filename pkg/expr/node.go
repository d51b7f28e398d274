package expr

import "github.com/wildfunctions/fxeval/pkg/funcs"

// ExprNode is the interface for all expression tree nodes.
type ExprNode interface {
	Eval(env Env) float64
	String() string
	LaTeX() string
	Clone() ExprNode
	NodeCount() int
	Depth() int
}

// Env carries the evaluation point and the angle mode.
type Env struct {
	X      float64
	Degree bool
}

// UnaryOp identifies a prefix operation.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

// NumNode represents a numeric literal.
type NumNode struct {
	Val float64
}

// VarNode represents the free variable. Name is the letter used in the
// formula; every letter binds to the same evaluation point.
type VarNode struct {
	Name byte
}

// ConstNode represents a named constant such as pi.
type ConstNode struct {
	Const funcs.Constant
}

// UnaryNode applies a prefix operation to a child expression.
type UnaryNode struct {
	Op    UnaryOp
	Child ExprNode
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right ExprNode
}

// CallNode applies a table function to its argument.
type CallNode struct {
	Fn  *funcs.Func
	Arg ExprNode
}

// GroupNode is a parenthesized subexpression.
type GroupNode struct {
	Child ExprNode
}
