package expr

import "math"

func (c *NumNode) NodeCount() int { return 1 }
func (v *VarNode) NodeCount() int { return 1 }
func (c *ConstNode) NodeCount() int { return 1 }
func (u *UnaryNode) NodeCount() int { return 1 + u.Child.NodeCount() }
func (b *BinaryNode) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}
func (c *CallNode) NodeCount() int { return 1 + c.Arg.NodeCount() }
func (g *GroupNode) NodeCount() int { return 1 + g.Child.NodeCount() }

func (c *NumNode) Depth() int { return 1 }
func (v *VarNode) Depth() int { return 1 }
func (c *ConstNode) Depth() int { return 1 }
func (u *UnaryNode) Depth() int { return 1 + u.Child.Depth() }
func (b *BinaryNode) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}
func (c *CallNode) Depth() int { return 1 + c.Arg.Depth() }
func (g *GroupNode) Depth() int { return 1 + g.Child.Depth() }

// WeightedComplexity returns a complexity score with heavier weight for
// operations that are more "expensive" (powers, function calls).
// Grouping parentheses are free.
func WeightedComplexity(node ExprNode) float64 {
	switch n := node.(type) {
	case *NumNode:
		v := math.Abs(n.Val)
		if v <= 10 {
			return 1.0
		}
		return 1.0 + math.Log10(v)
	case *VarNode, *ConstNode:
		return 1.0
	case *UnaryNode:
		return 1.0 + WeightedComplexity(n.Child)
	case *BinaryNode:
		w := binaryWeight(n.Op)
		return w + WeightedComplexity(n.Left) + WeightedComplexity(n.Right)
	case *CallNode:
		return 3.0 + WeightedComplexity(n.Arg)
	case *GroupNode:
		return WeightedComplexity(n.Child)
	default:
		return 1.0
	}
}

func binaryWeight(op BinaryOp) float64 {
	switch op {
	case OpAdd, OpSub:
		return 1.0
	case OpMul, OpDiv:
		return 1.5
	case OpPow:
		return 2.0
	default:
		return 1.5
	}
}
