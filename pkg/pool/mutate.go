package pool

import (
	"math"
	"math/rand"

	"github.com/wildfunctions/fxeval/pkg/expr"
)

// MutationType identifies a kind of mutation.
type MutationType int

const (
	MutPoint        MutationType = iota // replace a random node's operation
	MutSubtree                          // replace a random subtree with a new random tree
	MutHoist                            // replace tree with one of its subtrees
	MutConstPerturb                     // nudge a numeric literal
	MutGrow                             // wrap a node in a new operation
	MutShrink                           // replace a node with one of its children
)

const maxMutationDepth = 3

// Mutate returns a mutated copy of root built from p's building blocks.
// root itself is left untouched.
func Mutate(root expr.ExprNode, p Pool, rng *rand.Rand) expr.ExprNode {
	root = root.Clone()
	switch MutationType(rng.Intn(6)) {
	case MutPoint:
		return pointMutate(root, p, rng)
	case MutSubtree:
		return subtreeMutate(root, p, rng)
	case MutHoist:
		return hoistMutate(root, rng)
	case MutConstPerturb:
		return constPerturb(root, rng)
	case MutGrow:
		return growMutate(root, p, rng)
	default:
		return shrinkMutate(root, rng)
	}
}

// Crossover returns a copy of a with a random subtree replaced by a copy
// of a random subtree of b.
func Crossover(a, b expr.ExprNode, rng *rand.Rand) expr.ExprNode {
	child := a.Clone()
	donors := collectNodes(b)
	targets := collectNodes(child)
	donor := (*donors[rng.Intn(len(donors))]).Clone()
	*targets[rng.Intn(len(targets))] = donor
	return *targets[0]
}

// pointMutate replaces a random node's operation, keeping its children.
func pointMutate(root expr.ExprNode, p Pool, rng *rand.Rand) expr.ExprNode {
	nodes := collectNodes(root)
	idx := rng.Intn(len(nodes))
	target := nodes[idx]

	switch n := (*target).(type) {
	case *expr.NumNode, *expr.VarNode, *expr.ConstNode:
		*target = p.RandomLeaf(rng)
	case *expr.UnaryNode:
		*target = p.RandomUnary(rng, n.Child)
	case *expr.CallNode:
		*target = p.RandomUnary(rng, n.Arg)
	case *expr.GroupNode:
		*target = p.RandomUnary(rng, n.Child)
	case *expr.BinaryNode:
		n.Op = p.RandomBinary(rng)
	}
	return *nodes[0]
}

// subtreeMutate replaces a random subtree with a new random tree.
func subtreeMutate(root expr.ExprNode, p Pool, rng *rand.Rand) expr.ExprNode {
	nodes := collectNodes(root)
	*nodes[rng.Intn(len(nodes))] = p.RandomTree(rng, maxMutationDepth)
	return *nodes[0]
}

// hoistMutate replaces the tree with one of its subtrees.
func hoistMutate(root expr.ExprNode, rng *rand.Rand) expr.ExprNode {
	nodes := collectNodes(root)
	return *nodes[rng.Intn(len(nodes))]
}

// constPerturb nudges a random numeric literal by a quarter step. Literals
// stay non-negative; a printed negative literal would read back as a sign.
func constPerturb(root expr.ExprNode, rng *rand.Rand) expr.ExprNode {
	nums := collectNums(root)
	if len(nums) == 0 {
		return root
	}
	target := nums[rng.Intn(len(nums))]
	delta := float64(rng.Intn(12)+1) / 4
	if rng.Float64() < 0.5 {
		delta = -delta
	}
	target.Val = math.Abs(target.Val + delta)
	return root
}

// growMutate wraps a random node in a new unary or binary operation.
func growMutate(root expr.ExprNode, p Pool, rng *rand.Rand) expr.ExprNode {
	nodes := collectNodes(root)
	idx := rng.Intn(len(nodes))
	old := *nodes[idx]

	var grown expr.ExprNode
	switch {
	case rng.Float64() < 0.5:
		grown = p.RandomUnary(rng, old)
	case rng.Float64() < 0.5:
		grown = &expr.BinaryNode{Op: p.RandomBinary(rng), Left: old, Right: p.RandomLeaf(rng)}
	default:
		grown = &expr.BinaryNode{Op: p.RandomBinary(rng), Left: p.RandomLeaf(rng), Right: old}
	}
	*nodes[idx] = grown
	return *nodes[0]
}

// shrinkMutate replaces a non-leaf node with one of its children.
func shrinkMutate(root expr.ExprNode, rng *rand.Rand) expr.ExprNode {
	nodes := collectNodes(root)
	idx := rng.Intn(len(nodes))

	var child expr.ExprNode
	switch n := (*nodes[idx]).(type) {
	case *expr.UnaryNode:
		child = n.Child
	case *expr.CallNode:
		child = n.Arg
	case *expr.GroupNode:
		child = n.Child
	case *expr.BinaryNode:
		child = n.Left
		if rng.Float64() < 0.5 {
			child = n.Right
		}
	default:
		return root
	}
	*nodes[idx] = child
	return *nodes[0]
}

// collectNodes returns pointers to all nodes in the tree (for in-place
// mutation). The first entry holds the root; callers return *nodes[0] so
// that replacing the root takes effect.
func collectNodes(root expr.ExprNode) []*expr.ExprNode {
	var result []*expr.ExprNode
	collectNodesHelper(&root, &result)
	return result
}

func collectNodesHelper(node *expr.ExprNode, result *[]*expr.ExprNode) {
	*result = append(*result, node)
	switch n := (*node).(type) {
	case *expr.UnaryNode:
		collectNodesHelper(&n.Child, result)
	case *expr.CallNode:
		collectNodesHelper(&n.Arg, result)
	case *expr.GroupNode:
		collectNodesHelper(&n.Child, result)
	case *expr.BinaryNode:
		collectNodesHelper(&n.Left, result)
		collectNodesHelper(&n.Right, result)
	}
}

// collectNums returns pointers to all NumNodes in the tree.
func collectNums(root expr.ExprNode) []*expr.NumNode {
	var result []*expr.NumNode
	collectNumsHelper(root, &result)
	return result
}

func collectNumsHelper(node expr.ExprNode, result *[]*expr.NumNode) {
	switch n := node.(type) {
	case *expr.NumNode:
		*result = append(*result, n)
	case *expr.UnaryNode:
		collectNumsHelper(n.Child, result)
	case *expr.CallNode:
		collectNumsHelper(n.Arg, result)
	case *expr.GroupNode:
		collectNumsHelper(n.Child, result)
	case *expr.BinaryNode:
		collectNumsHelper(n.Left, result)
		collectNumsHelper(n.Right, result)
	}
}
