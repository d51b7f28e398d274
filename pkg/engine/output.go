package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iancoleman/orderedmap"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Sample is one evaluated point.
type Sample struct {
	X float64
	Y float64
}

// Report summarizes a sweep.
type Report struct {
	RunID      string
	Config     Config
	Formula    string
	Tree       string
	LaTeX      string
	NodeCount  int
	Depth      int
	Complexity float64
	Samples    []Sample
	Finite     int
	Min, Max   float64 // over finite samples; NaN when there are none
	Mean       float64
	Started    time.Time
	Elapsed    time.Duration
}

func (r *Report) summarize() {
	r.Finite = 0
	r.Min, r.Max, r.Mean = math.NaN(), math.NaN(), math.NaN()
	var sum float64
	for _, s := range r.Samples {
		if !isFinite(s.Y) {
			continue
		}
		if r.Finite == 0 || s.Y < r.Min {
			r.Min = s.Y
		}
		if r.Finite == 0 || s.Y > r.Max {
			r.Max = s.Y
		}
		sum += s.Y
		r.Finite++
	}
	if r.Finite > 0 {
		r.Mean = sum / float64(r.Finite)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// jsonNumber keeps finite values numeric; NaN and infinities, which JSON
// cannot carry, become strings.
func jsonNumber(v float64) any {
	if isFinite(v) {
		return v
	}
	return formatFloat(v)
}

// WriteTextSample writes one sample line in human-readable format.
func WriteTextSample(w io.Writer, s Sample) {
	fmt.Fprintf(w, "  f(%-12s) = %s\n", formatFloat(s.X), formatFloat(s.Y))
}

// WriteTextFinal writes the report in human-readable format.
func WriteTextFinal(w io.Writer, r Report) {
	mode := "degrees"
	if !r.Config.Degree {
		mode = "radians"
	}
	fmt.Fprintln(w, "========== SWEEP ==========")
	fmt.Fprintf(w, "Formula:   %s\n", r.Formula)
	fmt.Fprintf(w, "Parsed:    %s\n", r.Tree)
	fmt.Fprintf(w, "Mode:      %s, power %s\n", mode, r.Config.Power)
	fmt.Fprintf(w, "Nodes:     %d (depth %d, complexity %.1f)\n", r.NodeCount, r.Depth, r.Complexity)
	fmt.Fprintf(w, "Range:     [%s, %s] in %d points\n", formatFloat(r.Config.From), formatFloat(r.Config.To), len(r.Samples))
	fmt.Fprintln(w, "---------------------------")
	for _, s := range r.Samples {
		WriteTextSample(w, s)
	}
	fmt.Fprintln(w, "---------------------------")
	fmt.Fprintf(w, "Finite:    %d/%d\n", r.Finite, len(r.Samples))
	if r.Finite > 0 {
		fmt.Fprintf(w, "Min:       %s\n", formatFloat(r.Min))
		fmt.Fprintf(w, "Max:       %s\n", formatFloat(r.Max))
		fmt.Fprintf(w, "Mean:      %s\n", formatFloat(r.Mean))
	}
	fmt.Fprintf(w, "Elapsed:   %s\n", r.Elapsed)
	fmt.Fprintln(w, "===========================")
}

// WriteJSONFinal writes the report as JSON. Keys keep a fixed order and the
// samples form an object from x to f(x) in sweep order.
func WriteJSONFinal(w io.Writer, r Report) error {
	table := orderedmap.New()
	for _, s := range r.Samples {
		table.Set(formatFloat(s.X), jsonNumber(s.Y))
	}

	summary := orderedmap.New()
	summary.Set("finite", r.Finite)
	summary.Set("min", jsonNumber(r.Min))
	summary.Set("max", jsonNumber(r.Max))
	summary.Set("mean", jsonNumber(r.Mean))

	out := orderedmap.New()
	out.Set("run_id", r.RunID)
	out.Set("config", r.Config)
	out.Set("formula", r.Formula)
	out.Set("tree", r.Tree)
	out.Set("latex", r.LaTeX)
	out.Set("node_count", r.NodeCount)
	out.Set("depth", r.Depth)
	out.Set("complexity", r.Complexity)
	out.Set("samples", table)
	out.Set("summary", summary)
	out.Set("started", r.Started)
	out.Set("elapsed_ms", r.Elapsed.Milliseconds())

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// latexEscape escapes underscores and other special chars for LaTeX text mode.
func latexEscape(s string) string {
	r := strings.NewReplacer(`\`, `\textbackslash{}`, "_", `\_`, "^", `\^{}`, "&", `\&`, "%", `\%`, "#", `\#`)
	return r.Replace(s)
}

// WriteLatexFinal writes a compilable LaTeX document with the formula and
// its table of values.
func WriteLatexFinal(w io.Writer, r Report) {
	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	fmt.Fprintf(w, "\\title{Sweep --- \\texttt{%s}}\n", latexEscape(r.Formula))
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, `\[`)
	fmt.Fprintf(w, "  f(x) = %s\n", r.LaTeX)
	fmt.Fprintln(w, `\]`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, `\begin{tabular}{r|r}`)
	fmt.Fprintln(w, `$x$ & $f(x)$ \\ \hline`)
	for _, s := range r.Samples {
		fmt.Fprintf(w, "\\verb|%s| & \\verb|%s| \\\\\n", formatFloat(s.X), formatFloat(s.Y))
	}
	fmt.Fprintln(w, `\end{tabular}`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, `\end{document}`)
}

// WriteFinal writes r in the given format.
func WriteFinal(w io.Writer, r Report, format string) error {
	switch format {
	case "json":
		return WriteJSONFinal(w, r)
	case "latex":
		WriteLatexFinal(w, r)
	default:
		WriteTextFinal(w, r)
	}
	return nil
}

// WriteReportFile writes r to path, compressed with gzip when path ends
// in ".gz" and with zstd when it ends in ".zst".
func WriteReportFile(path string, r Report, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var zw io.WriteCloser
	switch {
	case strings.HasSuffix(path, ".gz"):
		zw = gzip.NewWriter(f)
	case strings.HasSuffix(path, ".zst"):
		zw, err = zstd.NewWriter(f, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return err
		}
	default:
		return WriteFinal(f, r, format)
	}
	if err := WriteFinal(zw, r, format); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}
