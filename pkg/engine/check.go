package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/wildfunctions/fxeval/pkg/evaluator"
	"github.com/wildfunctions/fxeval/pkg/expr"
	"github.com/wildfunctions/fxeval/pkg/parse"
	"github.com/wildfunctions/fxeval/pkg/pool"
)

// CheckConfig configures a self-check run.
type CheckConfig struct {
	Pool     string
	Count    int
	Seed     int64 // 0 = random
	MaxDepth int   // depth of generated trees
	Degree   bool
	Power    string
	// ParseDepth bounds parser recursion when re-reading printed trees.
	// 0 sizes the bound to each tree.
	ParseDepth int
}

// DefaultCheckConfig returns a CheckConfig with sensible defaults.
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{
		Pool:     "moderate",
		Count:    500,
		MaxDepth: 4,
		Degree:   true,
		Power:    "left",
	}
}

// Mismatch records a generated formula whose printed form evaluates
// differently from the tree it was printed from.
type Mismatch struct {
	Formula string
	X       float64
	Want    float64
	Got     float64
	Err     error
}

// CheckReport summarizes a self-check run.
type CheckReport struct {
	Seed       int64
	Formulas   int
	Evaluated  int
	Mismatches []Mismatch
	Elapsed    time.Duration
}

// checkPoints are the x values every generated formula is evaluated at.
var checkPoints = []float64{-2.5, 0, 0.5, 3}

// RunCheck generates random trees from a pool, prints each one, and
// evaluates the printed formula through the evaluator. Any result that is
// not bit-identical to evaluating the tree directly is a mismatch.
func RunCheck(ctx context.Context, cfg CheckConfig, logger *slog.Logger) (CheckReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p, err := pool.Get(cfg.Pool)
	if err != nil {
		return CheckReport{}, err
	}
	power, ok := parse.ParsePower(cfg.Power)
	if !ok {
		return CheckReport{}, fmt.Errorf("unknown power mode: %s", cfg.Power)
	}
	if cfg.Count <= 0 {
		return CheckReport{}, fmt.Errorf("count must be positive")
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultCheckConfig().MaxDepth
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	start := time.Now()

	logger.Info("starting check", "pool", p.Name(), "count", cfg.Count, "seed", seed, "power", power)

	report := CheckReport{Seed: seed}
	var prev expr.ExprNode
	for i := 0; i < cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		tree := p.RandomTree(rng, cfg.MaxDepth)
		if prev == nil {
			prev = tree
		}
		// Each tree is checked along with a mutant and a crossover with
		// the previous tree, which reach shapes the pool rarely builds.
		for _, t := range []expr.ExprNode{tree, pool.Mutate(tree, p, rng), pool.Crossover(tree, prev, rng)} {
			if m, bad := checkTree(t, cfg.Degree, power, cfg.ParseDepth, &report); bad {
				report.Mismatches = append(report.Mismatches, m)
				logger.Warn("mismatch", "formula", m.Formula, "x", m.X, "want", m.Want, "got", m.Got, "err", m.Err)
			}
		}
		prev = tree
	}

	report.Elapsed = time.Since(start)
	logger.Info("check done", "formulas", report.Formulas, "mismatches", len(report.Mismatches), "elapsed", report.Elapsed)
	return report, nil
}

// checkTree evaluates the printed form of tree at every check point and
// returns the first disagreement with the tree itself.
func checkTree(tree expr.ExprNode, degree bool, power parse.Power, parseDepth int, report *CheckReport) (Mismatch, bool) {
	if parseDepth <= 0 {
		parseDepth = printedDepth(tree)
	}
	formula := tree.String()
	ev := evaluator.New(formula, degree, evaluator.WithPower(power), evaluator.WithMaxDepth(parseDepth))
	report.Formulas++

	for _, x := range checkPoints {
		want := tree.Eval(expr.Env{X: x, Degree: degree})
		got, err := ev.EvaluateAt(x)
		report.Evaluated++
		if err != nil || !sameBits(want, got) {
			return Mismatch{Formula: formula, X: x, Want: want, Got: got, Err: err}, true
		}
	}
	return Mismatch{}, false
}

// printedDepth returns a parser bound deep enough for the fully
// parenthesized form of tree. Each tree level costs at most two nested
// parses: one for its brackets and one for a right operand or sign operand.
func printedDepth(tree expr.ExprNode) int {
	d := 2*tree.Depth() + 2
	if d < parse.DefaultMaxDepth {
		return parse.DefaultMaxDepth
	}
	return d
}

// sameBits treats every NaN as equal.
func sameBits(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Float64bits(a) == math.Float64bits(b)
}
