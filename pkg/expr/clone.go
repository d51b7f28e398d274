package expr

func (c *NumNode) Clone() ExprNode {
	return &NumNode{Val: c.Val}
}

func (v *VarNode) Clone() ExprNode {
	return &VarNode{Name: v.Name}
}

func (c *ConstNode) Clone() ExprNode {
	return &ConstNode{Const: c.Const}
}

func (u *UnaryNode) Clone() ExprNode {
	return &UnaryNode{
		Op:    u.Op,
		Child: u.Child.Clone(),
	}
}

func (b *BinaryNode) Clone() ExprNode {
	return &BinaryNode{
		Op:    b.Op,
		Left:  b.Left.Clone(),
		Right: b.Right.Clone(),
	}
}

// Clone shares Fn: function table entries are immutable.
func (c *CallNode) Clone() ExprNode {
	return &CallNode{
		Fn:  c.Fn,
		Arg: c.Arg.Clone(),
	}
}

func (g *GroupNode) Clone() ExprNode {
	return &GroupNode{Child: g.Child.Clone()}
}
