package pool

import (
	"math/rand"

	"github.com/wildfunctions/fxeval/pkg/expr"
	"github.com/wildfunctions/fxeval/pkg/funcs"
)

func init() {
	Register("kitchensink", func() Pool { return &KitchenSinkPool{names: funcs.Names()} })
}

// KitchenSinkPool extends moderate with every function in the table.
type KitchenSinkPool struct {
	names []string
}

func (p *KitchenSinkPool) Name() string { return "kitchensink" }

func (p *KitchenSinkPool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.35:
		return variable()
	case r < 0.65:
		return integer(rng)
	case r < 0.8:
		return &expr.NumNode{Val: float64(rng.Intn(400)+1) / 8}
	case r < 0.9:
		return constant("pi")
	default:
		return constant("e")
	}
}

func (p *KitchenSinkPool) RandomUnary(rng *rand.Rand, child expr.ExprNode) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.2:
		return negate(child)
	case r < 0.3:
		return &expr.GroupNode{Child: child}
	default:
		return call(p.names[rng.Intn(len(p.names))], child)
	}
}

var kitchenSinkBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
	expr.OpPow,
}

func (p *KitchenSinkPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return kitchenSinkBinary[rng.Intn(len(kitchenSinkBinary))]
}

func (p *KitchenSinkPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
