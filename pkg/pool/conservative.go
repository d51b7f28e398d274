package pool

import (
	"math/rand"

	"github.com/wildfunctions/fxeval/pkg/expr"
)

func init() {
	Register("conservative", func() Pool { return &ConservativePool{} })
}

// ConservativePool provides basic building blocks: x, ints 1-10,
// negation, and basic arithmetic.
type ConservativePool struct{}

func (p *ConservativePool) Name() string { return "conservative" }

func (p *ConservativePool) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	if rng.Float64() < 0.4 {
		return variable()
	}
	return integer(rng)
}

func (p *ConservativePool) RandomUnary(rng *rand.Rand, child expr.ExprNode) expr.ExprNode {
	return negate(child)
}

var conservativeBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
}

func (p *ConservativePool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return conservativeBinary[rng.Intn(len(conservativeBinary))]
}

func (p *ConservativePool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
