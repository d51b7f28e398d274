package expr

import "math"

// Eval for NumNode returns the literal.
func (c *NumNode) Eval(env Env) float64 {
	return c.Val
}

// Eval for VarNode returns the evaluation point.
func (v *VarNode) Eval(env Env) float64 {
	return env.X
}

// Eval for ConstNode returns the constant value.
func (c *ConstNode) Eval(env Env) float64 {
	return c.Const.Value
}

func (u *UnaryNode) Eval(env Env) float64 {
	child := u.Child.Eval(env)
	switch u.Op {
	case OpNeg:
		return -child
	default:
		return math.NaN()
	}
}

// Eval for BinaryNode dispatches on op. Results follow IEEE-754: division by
// zero yields an infinity and invalid operations yield NaN.
func (b *BinaryNode) Eval(env Env) float64 {
	left := b.Left.Eval(env)
	right := b.Right.Eval(env)

	switch b.Op {
	case OpAdd:
		return left + right
	case OpSub:
		return left - right
	case OpMul:
		return left * right
	case OpDiv:
		return left / right
	case OpPow:
		return math.Pow(left, right)
	default:
		return math.NaN()
	}
}

func (c *CallNode) Eval(env Env) float64 {
	return c.Fn.Apply(c.Arg.Eval(env), env.Degree)
}

func (g *GroupNode) Eval(env Env) float64 {
	return g.Child.Eval(env)
}
