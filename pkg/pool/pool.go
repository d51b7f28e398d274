package pool

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/wildfunctions/fxeval/pkg/expr"
	"github.com/wildfunctions/fxeval/pkg/funcs"
)

// Pool provides random building blocks for constructing formula trees.
type Pool interface {
	Name() string
	RandomLeaf(rng *rand.Rand) expr.ExprNode
	// RandomUnary wraps child in a prefix sign, a function call or a group.
	RandomUnary(rng *rand.Rand, child expr.ExprNode) expr.ExprNode
	RandomBinary(rng *rand.Rand) expr.BinaryOp
	RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode
}

var registry = map[string]func() Pool{}

// Register adds a pool constructor to the registry.
func Register(name string, constructor func() Pool) {
	registry[name] = constructor
}

// Get returns a pool by name.
func Get(name string) (Pool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pool: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered pool names, sorted.
func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// randomTree is a shared helper for building random trees.
func randomTree(p Pool, rng *rand.Rand, maxDepth int) expr.ExprNode {
	if maxDepth <= 1 {
		return p.RandomLeaf(rng)
	}
	// Bias toward leaves at shallow depths to keep trees small
	r := rng.Float64()
	switch {
	case r < 0.4:
		return p.RandomLeaf(rng)
	case r < 0.6:
		return p.RandomUnary(rng, randomTree(p, rng, maxDepth-1))
	default:
		return &expr.BinaryNode{
			Op:    p.RandomBinary(rng),
			Left:  randomTree(p, rng, maxDepth-1),
			Right: randomTree(p, rng, maxDepth-1),
		}
	}
}

func variable() expr.ExprNode {
	return &expr.VarNode{Name: 'x'}
}

func integer(rng *rand.Rand) expr.ExprNode {
	return &expr.NumNode{Val: float64(rng.Intn(10) + 1)}
}

func negate(child expr.ExprNode) expr.ExprNode {
	return &expr.UnaryNode{Op: expr.OpNeg, Child: child}
}

// call panics on names missing from the function table, which can only
// happen through a typo in a pool definition.
func call(name string, arg expr.ExprNode) expr.ExprNode {
	fn, ok := funcs.Lookup(name)
	if !ok {
		panic("pool: unknown function " + name)
	}
	return &expr.CallNode{Fn: fn, Arg: arg}
}

func constant(name string) expr.ExprNode {
	c, ok := funcs.LookupConstant(name)
	if !ok {
		panic("pool: unknown constant " + name)
	}
	return &expr.ConstNode{Const: c}
}
