package pool

import (
	"math"
	"math/rand"
	"testing"

	"github.com/wildfunctions/fxeval/pkg/expr"
	"github.com/wildfunctions/fxeval/pkg/parse"
)

func sameValue(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Float64bits(a) == math.Float64bits(b)
}

// checkPool generates trees from the named pool and checks that each one
// prints to a formula that parses back to the same value.
func checkPool(t *testing.T, name string, minFinite float64) {
	t.Helper()
	p, err := Get(name)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(42))

	finite := 0
	total := 1000
	for i := 0; i < total; i++ {
		tree := p.RandomTree(rng, 4)
		text := tree.String()

		parsed, err := parse.Parse(text, parse.Options{})
		if err != nil {
			t.Fatalf("%s: generated formula %q does not parse: %v", name, text, err)
		}

		env := expr.Env{X: float64(rng.Intn(10) + 1), Degree: rng.Intn(2) == 0}
		want := tree.Eval(env)
		got := parsed.Eval(env)
		if !sameValue(want, got) {
			t.Fatalf("%s: %q at %+v: tree gives %v, parsed gives %v", name, text, env, want, got)
		}
		if !math.IsNaN(want) && !math.IsInf(want, 0) {
			finite++
		}
	}

	if float64(finite)/float64(total) < minFinite {
		t.Errorf("Only %d/%d trees evaluated to finite values", finite, total)
	}
	t.Logf("%s pool: %d/%d trees finite", name, finite, total)
}

func TestConservativePool(t *testing.T) {
	checkPool(t, "conservative", 0.5)
}

func TestModeratePool(t *testing.T) {
	checkPool(t, "moderate", 0.25)
}

func TestKitchenSinkPool(t *testing.T) {
	checkPool(t, "kitchensink", 0.1)
}

func TestConservativeOpsOnly(t *testing.T) {
	p, _ := Get("conservative")
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		var walk func(n expr.ExprNode)
		walk = func(n expr.ExprNode) {
			switch n := n.(type) {
			case *expr.BinaryNode:
				if n.Op == expr.OpPow {
					t.Fatalf("conservative pool produced a power: %s", n)
				}
				walk(n.Left)
				walk(n.Right)
			case *expr.UnaryNode:
				walk(n.Child)
			case *expr.CallNode, *expr.ConstNode, *expr.GroupNode:
				t.Fatalf("conservative pool produced %T", n)
			}
		}
		walk(p.RandomTree(rng, 5))
	}
}

func TestPoolRegistry(t *testing.T) {
	names := Names()
	if len(names) < 3 {
		t.Errorf("Expected at least 3 registered pools, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Names() not sorted: %v", names)
		}
	}

	for _, name := range names {
		p, err := Get(name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if p.Name() != name {
			t.Errorf("Pool name mismatch: %q vs %q", p.Name(), name)
		}
	}
}

func TestUnknownPool(t *testing.T) {
	_, err := Get("nonexistent")
	if err == nil {
		t.Error("Expected error for unknown pool")
	}
}

func TestMutateLeavesOriginal(t *testing.T) {
	p, _ := Get("kitchensink")
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 500; i++ {
		a := p.RandomTree(rng, 4)
		b := p.RandomTree(rng, 4)
		beforeA, beforeB := a.String(), b.String()

		mutant := Mutate(a, p, rng)
		child := Crossover(a, b, rng)

		if a.String() != beforeA || b.String() != beforeB {
			t.Fatalf("parents changed: %s -> %s, %s -> %s", beforeA, a, beforeB, b)
		}
		for _, tree := range []expr.ExprNode{mutant, child} {
			if _, err := parse.Parse(tree.String(), parse.Options{}); err != nil {
				t.Fatalf("%q does not parse: %v", tree.String(), err)
			}
		}
	}
}

func TestConstPerturbKeepsLiteralsNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	tree := expr.ExprNode(&expr.BinaryNode{Op: expr.OpSub, Left: &expr.NumNode{Val: 0.25}, Right: &expr.VarNode{Name: 'x'}})
	for i := 0; i < 200; i++ {
		tree = constPerturb(tree, rng)
		for _, n := range collectNums(tree) {
			if n.Val < 0 {
				t.Fatalf("negative literal %v in %s", n.Val, tree)
			}
		}
	}
}
