package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wildfunctions/fxeval/pkg/evaluator"
	"github.com/wildfunctions/fxeval/pkg/parse"
)

var (
	radians  bool
	power    string
	maxDepth int
	verbose  bool

	evalX     float64
	showLaTeX bool
)

// rootCmd evaluates a formula when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "fxeval [formula]",
	Short: "Evaluate single-variable formulas",
	Long: `fxeval evaluates formulas such as "sin(x)^2 + cos(x)^2" at a point.

Every letter that is not a function or a constant (e, pi) stands for the
evaluation point. Trigonometric functions work in degrees unless --radians
is given.

With no subcommand the formula given as arguments is evaluated once at --x.
Put "--" before a formula that starts with a minus sign.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEvaluate,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&radians, "radians", false, "trigonometric functions work in radians")
	rootCmd.PersistentFlags().StringVar(&power, "power", "left", "how '^' binds (left, right)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", parse.DefaultMaxDepth, "maximum nesting depth")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.Flags().Float64Var(&evalX, "x", 0, "evaluation point")
	rootCmd.Flags().BoolVar(&showLaTeX, "latex", false, "also print the formula as LaTeX")
}

// newLogger returns a text logger on stderr. Debug output needs --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// evaluatorOptions builds evaluator options from the persistent flags.
func evaluatorOptions() ([]evaluator.Option, error) {
	p, ok := parse.ParsePower(power)
	if !ok {
		return nil, fmt.Errorf("unknown power mode %q (want left or right)", power)
	}
	return []evaluator.Option{
		evaluator.WithPower(p),
		evaluator.WithMaxDepth(maxDepth),
	}, nil
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	opts, err := evaluatorOptions()
	if err != nil {
		return err
	}

	ev := evaluator.New(strings.Join(args, " "), !radians, opts...)
	newLogger().Debug("evaluating", "formula", ev.Formula(), "x", evalX, "degree", ev.Degree(), "power", ev.Power())

	y, err := ev.EvaluateAt(evalX)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), pointAt(ev.Formula(), err))
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatValue(y))

	if showLaTeX {
		tree, err := ev.Parse()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tree.LaTeX())
	}
	return nil
}

// pointAt renders formula with a caret under the position of err, or
// nothing when err carries no position.
func pointAt(formula string, err error) string {
	var perr *evaluator.Error
	if !errors.As(err, &perr) || perr.Pos > len(formula) {
		return ""
	}
	return fmt.Sprintf("  %s\n  %s%s\n", formula, strings.Repeat(" ", perr.Pos), color.RedString("^"))
}
