package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wildfunctions/fxeval/pkg/evaluator"
	"github.com/wildfunctions/fxeval/pkg/expr"
	"github.com/wildfunctions/fxeval/pkg/parse"
)

// Engine evaluates one formula over evenly spaced points.
type Engine struct {
	cfg  Config
	ev   *evaluator.Evaluator
	tree expr.ExprNode
	log  *slog.Logger
}

// New creates an engine from cfg. The formula is parsed once here so that
// syntax errors surface before any work is scheduled.
func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	power, _ := parse.ParsePower(cfg.Power)

	ev := evaluator.New(cfg.Formula, cfg.Degree,
		evaluator.WithPower(power),
		evaluator.WithMaxDepth(cfg.MaxDepth))
	tree, err := ev.Parse()
	if err != nil {
		return nil, fmt.Errorf("formula %q: %w", ev.Formula(), err)
	}

	return &Engine{
		cfg:  cfg,
		ev:   ev,
		tree: tree,
		log:  logger,
	}, nil
}

// Points returns the sample points of the sweep, From first.
func (e *Engine) Points() []float64 {
	n := e.cfg.Points
	points := make([]float64, n)
	if n == 1 {
		points[0] = e.cfg.From
		return points
	}
	step := (e.cfg.To - e.cfg.From) / float64(n-1)
	for i := range points {
		points[i] = e.cfg.From + float64(i)*step
	}
	points[n-1] = e.cfg.To
	return points
}

// Run evaluates every point and returns the report. Samples keep point
// order regardless of the number of workers.
func (e *Engine) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	points := e.Points()

	report := Report{
		RunID:      uuid.NewString(),
		Config:     e.cfg,
		Formula:    e.ev.Formula(),
		Tree:       e.tree.String(),
		LaTeX:      e.tree.LaTeX(),
		NodeCount:  e.tree.NodeCount(),
		Depth:      e.tree.Depth(),
		Complexity: expr.WeightedComplexity(e.tree),
		Started:    start.UTC(),
	}

	e.log.Info("starting sweep",
		"run", report.RunID,
		"formula", report.Formula,
		"points", len(points),
		"workers", e.cfg.Workers,
		"degree", e.cfg.Degree,
		"power", e.cfg.Power)

	samples, err := e.evaluatePoints(ctx, points)
	if err != nil {
		return Report{}, err
	}
	report.Samples = samples
	report.summarize()
	report.Elapsed = time.Since(start)

	e.log.Info("sweep done",
		"run", report.RunID,
		"finite", report.Finite,
		"non_finite", len(samples)-report.Finite,
		"elapsed", report.Elapsed)
	return report, nil
}

// evaluatePoints evaluates all points in parallel.
func (e *Engine) evaluatePoints(ctx context.Context, points []float64) ([]Sample, error) {
	n := len(points)
	samples := make([]Sample, n)

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	type job struct {
		idx int
		x   float64
	}

	jobs := make(chan job, n)
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					once.Do(func() { firstErr = err })
					continue
				}
				y, err := e.ev.EvaluateAt(j.x)
				if err != nil {
					once.Do(func() { firstErr = err })
					continue
				}
				samples[j.idx] = Sample{X: j.x, Y: y}
				if e.cfg.Verbose {
					e.log.Debug("sample", "i", j.idx, "x", j.x, "y", y)
				}
			}
		}()
	}

	for i, x := range points {
		jobs <- job{idx: i, x: x}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return samples, nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
