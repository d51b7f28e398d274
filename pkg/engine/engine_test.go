package engine

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/wildfunctions/fxeval/pkg/evaluator"
	"github.com/wildfunctions/fxeval/pkg/expr"
	"github.com/wildfunctions/fxeval/pkg/parse"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngine_SmallRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formula = "x^2+1"
	cfg.From = 0
	cfg.To = 4
	cfg.Points = 5
	cfg.Workers = 3

	e, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	report, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{1, 2, 5, 10, 17}
	if len(report.Samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(report.Samples), len(want))
	}
	for i, s := range report.Samples {
		if s.X != float64(i) {
			t.Errorf("sample %d: x = %v, want %v", i, s.X, i)
		}
		if s.Y != want[i] {
			t.Errorf("sample %d: f(%v) = %v, want %v", i, s.X, s.Y, want[i])
		}
	}
	if report.Finite != 5 || report.Min != 1 || report.Max != 17 || report.Mean != 7 {
		t.Errorf("summary = finite %d min %v max %v mean %v", report.Finite, report.Min, report.Max, report.Mean)
	}
	if report.RunID == "" {
		t.Error("Expected a run id")
	}
	if report.Tree != "((x ^ 2) + 1)" {
		t.Errorf("Tree = %q", report.Tree)
	}
}

func TestEngine_OrderIndependentOfWorkers(t *testing.T) {
	var reference []Sample
	for _, workers := range []int{1, 2, 8, 0} {
		cfg := DefaultConfig()
		cfg.Formula = "sin(x)*cos(2*x) - x/7"
		cfg.From = -90
		cfg.To = 90
		cfg.Points = 181
		cfg.Workers = workers

		e, err := New(cfg, quietLogger())
		if err != nil {
			t.Fatal(err)
		}
		report, err := e.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if reference == nil {
			reference = report.Samples
			continue
		}
		for i := range reference {
			if math.Float64bits(reference[i].Y) != math.Float64bits(report.Samples[i].Y) {
				t.Fatalf("workers=%d: sample %d differs: %v vs %v", workers, i, report.Samples[i].Y, reference[i].Y)
			}
		}
	}
}

func TestEngine_Points(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formula = "x"
	cfg.From = 1
	cfg.To = 2
	cfg.Points = 1

	e, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if p := e.Points(); len(p) != 1 || p[0] != 1 {
		t.Errorf("Points() = %v, want [1]", p)
	}

	cfg.Points = 3
	cfg.From = 10
	cfg.To = 0
	e, err = New(cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	p := e.Points()
	if len(p) != 3 || p[0] != 10 || p[1] != 5 || p[2] != 0 {
		t.Errorf("Points() = %v, want [10 5 0]", p)
	}
}

func TestEngine_NonFiniteSamples(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formula = "1/x"
	cfg.From = -1
	cfg.To = 1
	cfg.Points = 3

	e, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	report, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Finite != 2 {
		t.Errorf("Finite = %d, want 2", report.Finite)
	}
	if !math.IsInf(report.Samples[1].Y, 1) {
		t.Errorf("f(0) = %v, want +Inf", report.Samples[1].Y)
	}

	var buf bytes.Buffer
	if err := WriteJSONFinal(&buf, report); err != nil {
		t.Fatalf("WriteJSONFinal: %v", err)
	}
	if !strings.Contains(buf.String(), `"0": "+Inf"`) {
		t.Errorf("JSON does not carry +Inf as a string:\n%s", buf.String())
	}
}

func TestEngine_InvalidFormula(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formula = "foo(x)"

	_, err := New(cfg, quietLogger())
	if !errors.Is(err, evaluator.ErrUnknownFunction) {
		t.Errorf("Expected unknown function error, got %v", err)
	}
}

func TestEngine_InvalidConfig(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.Formula = "" },
		func(c *Config) { c.Power = "sideways" },
		func(c *Config) { c.Points = 0 },
		func(c *Config) { c.Format = "xml" },
	}
	for i, mutate := range cases {
		cfg := DefaultConfig()
		cfg.Formula = "x"
		mutate(&cfg)
		if _, err := New(cfg, quietLogger()); err == nil {
			t.Errorf("case %d: expected config error", i)
		}
	}
}

func TestEngine_Cancelled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formula = "x"
	cfg.Points = 100

	e, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestEngine_PowerRight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formula = "2^x^2"
	cfg.Power = "right"
	cfg.From = 3
	cfg.To = 3
	cfg.Points = 1

	e, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	report, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Samples[0].Y != 512 {
		t.Errorf("2^3^2 = %v with right power, want 512", report.Samples[0].Y)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	data := "formula: sin(x)\ndegree: false\nfrom: -1.5\nto: 1.5\npoints: 7\nformat: json\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadConfig(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Formula != "sin(x)" || cfg.Degree || cfg.From != -1.5 || cfg.To != 1.5 || cfg.Points != 7 || cfg.Format != "json" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.Power != "left" || cfg.MaxDepth != DefaultConfig().MaxDepth {
		t.Errorf("defaults lost: %+v", cfg)
	}

	if err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), &cfg); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestWriteFormats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formula = "sqrt(x)"
	cfg.From = 0
	cfg.To = 9
	cfg.Points = 4

	e, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	report, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var text bytes.Buffer
	if err := WriteFinal(&text, report, "text"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text.String(), "Formula:   sqrt(x)") {
		t.Errorf("text output missing formula:\n%s", text.String())
	}

	var tex bytes.Buffer
	if err := WriteFinal(&tex, report, "latex"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tex.String(), `f(x) = \sqrt{x}`) {
		t.Errorf("latex output missing formula:\n%s", tex.String())
	}

	var js bytes.Buffer
	if err := WriteFinal(&js, report, "json"); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Formula string             `json:"formula"`
		Samples map[string]float64 `json:"samples"`
	}
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, js.String())
	}
	if decoded.Formula != "sqrt(x)" || decoded.Samples["9"] != 3 || decoded.Samples["6"] != math.Sqrt(6) {
		t.Errorf("unexpected JSON: %+v", decoded)
	}
	// Samples keep sweep order.
	s := js.String()
	if strings.Index(s, `"0":`) > strings.Index(s, `"3":`) || strings.Index(s, `"3":`) > strings.Index(s, `"9":`) {
		t.Errorf("samples out of order:\n%s", s)
	}
}

func TestWriteReportFileGzip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formula = "x*2"
	cfg.Points = 3

	e, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	report, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "report.json.gz")
	if err := WriteReportFile(path, report, "json"); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("report is not gzip: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Errorf("decompressed report is not JSON:\n%s", data)
	}
}

func TestRunCheck(t *testing.T) {
	for _, name := range []string{"conservative", "moderate", "kitchensink"} {
		for _, power := range []string{"left", "right"} {
			cfg := DefaultCheckConfig()
			cfg.Pool = name
			cfg.Power = power
			cfg.Count = 200
			cfg.Seed = 99

			report, err := RunCheck(context.Background(), cfg, quietLogger())
			if err != nil {
				t.Fatalf("%s/%s: %v", name, power, err)
			}
			if report.Formulas != 3*200 || report.Seed != 99 {
				t.Errorf("%s/%s: unexpected report %+v", name, power, report)
			}
			for _, m := range report.Mismatches {
				t.Errorf("%s/%s: %q at x=%v: want %v, got %v (%v)", name, power, m.Formula, m.X, m.Want, m.Got, m.Err)
			}
		}
	}
}

func TestRunCheck_BadConfig(t *testing.T) {
	cfg := DefaultCheckConfig()
	cfg.Pool = "nonexistent"
	if _, err := RunCheck(context.Background(), cfg, quietLogger()); err == nil {
		t.Error("Expected error for unknown pool")
	}

	cfg = DefaultCheckConfig()
	cfg.Power = "up"
	if _, err := RunCheck(context.Background(), cfg, quietLogger()); err == nil {
		t.Error("Expected error for unknown power mode")
	}
}

func TestWriteReportFileZstd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formula = "x+1"
	cfg.Points = 4

	e, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	report, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "report.txt.zst")
	if err := WriteReportFile(path, report, "text"); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("report is not zstd: %v", err)
	}
	if !strings.Contains(string(data), "Formula:   x+1") {
		t.Errorf("unexpected report:\n%s", data)
	}
}

func TestCheckTree_DeepTreeWithinParseBound(t *testing.T) {
	var tree expr.ExprNode = &expr.VarNode{Name: 'x'}
	for i := 0; i < 200; i++ {
		tree = &expr.UnaryNode{Op: expr.OpNeg, Child: tree}
	}

	var report CheckReport
	if m, bad := checkTree(tree, true, parse.PowerLeft, 0, &report); bad {
		t.Fatalf("deep tree reported as mismatch: %v", m.Err)
	}

	// An explicit bound still applies.
	m, bad := checkTree(tree, true, parse.PowerLeft, parse.DefaultMaxDepth, &report)
	if !bad || !errors.Is(m.Err, evaluator.ErrRecursionLimitExceeded) {
		t.Errorf("Expected recursion limit with depth %d, got %v", parse.DefaultMaxDepth, m.Err)
	}
}

func TestRunCheck_ParseDepthTooSmall(t *testing.T) {
	cfg := DefaultCheckConfig()
	cfg.Pool = "conservative"
	cfg.Count = 20
	cfg.Seed = 4
	cfg.ParseDepth = 1

	report, err := RunCheck(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Mismatches) == 0 {
		t.Error("Expected mismatches with a parse depth of 1")
	}
}
