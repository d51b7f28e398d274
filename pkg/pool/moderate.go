package pool

import (
	"math/rand"

	"github.com/wildfunctions/fxeval/pkg/expr"
)

func init() {
	Register("moderate", func() Pool { return &ModeratePool{} })
}

// ModeratePool extends conservative with decimal literals, pi and e as
// leaves, sqrt and groups as unary, and power as binary.
type ModeratePool struct{}

func (p *ModeratePool) Name() string { return "moderate" }

func (p *ModeratePool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.35:
		return variable()
	case r < 0.7:
		return integer(rng)
	case r < 0.85:
		// halves and quarters print exactly
		return &expr.NumNode{Val: float64(rng.Intn(40)+1) / 4}
	case r < 0.925:
		return constant("pi")
	default:
		return constant("e")
	}
}

func (p *ModeratePool) RandomUnary(rng *rand.Rand, child expr.ExprNode) expr.ExprNode {
	switch rng.Intn(3) {
	case 0:
		return negate(child)
	case 1:
		return call("sqrt", child)
	default:
		return &expr.GroupNode{Child: child}
	}
}

var moderateBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
	expr.OpPow,
}

func (p *ModeratePool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return moderateBinary[rng.Intn(len(moderateBinary))]
}

func (p *ModeratePool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
