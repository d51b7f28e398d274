package expr

import (
	"fmt"
	"strconv"
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
}

// String methods render fully parenthesized formulas that parse back to
// the same tree under either power mode.

func (c *NumNode) String() string {
	return strconv.FormatFloat(c.Val, 'f', -1, 64)
}

func (v *VarNode) String() string {
	if v.Name == 0 {
		return "x"
	}
	return string(rune(v.Name))
}

func (c *ConstNode) String() string {
	return c.Const.Name
}

func (u *UnaryNode) String() string {
	switch u.Op {
	case OpNeg:
		return fmt.Sprintf("(-%s)", u.Child.String())
	default:
		return u.Child.String()
	}
}

func (b *BinaryNode) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), binaryOpSymbols[b.Op], b.Right.String())
}

func (c *CallNode) String() string {
	return fmt.Sprintf("%s(%s)", c.Fn.Name, c.Arg.String())
}

func (g *GroupNode) String() string {
	return fmt.Sprintf("(%s)", g.Child.String())
}

// LaTeX methods

func (c *NumNode) LaTeX() string {
	return c.String()
}

func (v *VarNode) LaTeX() string {
	return v.String()
}

func (c *ConstNode) LaTeX() string {
	return c.Const.LaTeX
}

func (u *UnaryNode) LaTeX() string {
	child := u.Child.LaTeX()
	switch u.Op {
	case OpNeg:
		return fmt.Sprintf("-{%s}", child)
	default:
		return child
	}
}

func (b *BinaryNode) LaTeX() string {
	left := b.Left.LaTeX()
	right := b.Right.LaTeX()
	switch b.Op {
	case OpAdd:
		return fmt.Sprintf("{%s} + {%s}", left, right)
	case OpSub:
		return fmt.Sprintf("{%s} - {%s}", left, right)
	case OpMul:
		return fmt.Sprintf("{%s} \\cdot {%s}", left, right)
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", left, right)
	case OpPow:
		return fmt.Sprintf("{%s}^{%s}", left, right)
	default:
		return ""
	}
}

func (c *CallNode) LaTeX() string {
	return fmt.Sprintf(c.Fn.LaTeX, c.Arg.LaTeX())
}

func (g *GroupNode) LaTeX() string {
	return fmt.Sprintf("\\left(%s\\right)", g.Child.LaTeX())
}
