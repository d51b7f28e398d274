package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wildfunctions/fxeval/pkg/engine"
	"github.com/wildfunctions/fxeval/pkg/pool"
)

var checkFlags = engine.DefaultCheckConfig()

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Cross-check the parser against randomly generated formulas",
	Long: `Check builds random formula trees, prints each one as text, evaluates the
text through the public evaluator and compares the result with evaluating
the tree directly. Any difference is reported and makes the command fail.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkFlags.Pool, "pool", checkFlags.Pool, "formula pool ("+strings.Join(pool.Names(), ", ")+")")
	f.IntVar(&checkFlags.Count, "count", checkFlags.Count, "number of formulas")
	f.Int64Var(&checkFlags.Seed, "seed", 0, "random seed (0 = random)")
	f.IntVar(&checkFlags.MaxDepth, "maxdepth", checkFlags.MaxDepth, "max tree depth")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := checkFlags
	cfg.Degree = !radians
	cfg.Power = power
	if cmd.Flags().Changed("max-depth") {
		cfg.ParseDepth = maxDepth
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := engine.RunCheck(ctx, cfg, newLogger())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range report.Mismatches {
		if m.Err != nil {
			fmt.Fprintf(out, "%s %s at x=%s: %v\n", color.RedString("FAIL"), m.Formula, formatValue(m.X), m.Err)
			continue
		}
		fmt.Fprintf(out, "%s %s at x=%s: tree %s, text %s\n", color.RedString("FAIL"),
			m.Formula, formatValue(m.X), formatValue(m.Want), formatValue(m.Got))
	}
	fmt.Fprintf(out, "%d formulas, %d evaluations, seed %d, %s\n",
		report.Formulas, report.Evaluated, report.Seed, report.Elapsed)

	if len(report.Mismatches) > 0 {
		return fmt.Errorf("%d mismatches", len(report.Mismatches))
	}
	fmt.Fprintln(out, color.GreenString("PASS"))
	return nil
}
