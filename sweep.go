package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/wildfunctions/fxeval/pkg/engine"
)

var (
	sweepConfigPath string
	sweepFlags      = engine.DefaultConfig()
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Evaluate a formula over evenly spaced points",
	Long: `Sweep evaluates a formula at --points evenly spaced values from --from to
--to and prints a table with a summary.

Settings may come from a YAML file given with --config; flags given on the
command line override the file.`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.StringVar(&sweepConfigPath, "config", "", "YAML configuration file")
	f.StringVar(&sweepFlags.Formula, "formula", "", "formula to sweep")
	f.Float64Var(&sweepFlags.From, "from", sweepFlags.From, "first point")
	f.Float64Var(&sweepFlags.To, "to", sweepFlags.To, "last point")
	f.IntVar(&sweepFlags.Points, "points", sweepFlags.Points, "number of points")
	f.IntVar(&sweepFlags.Workers, "workers", sweepFlags.Workers, "number of parallel workers")
	f.StringVar(&sweepFlags.Format, "format", sweepFlags.Format, "output format (text, json, latex)")
	f.StringVar(&sweepFlags.Out, "out", "", "write the report to this file, compressed if it ends in .gz or .zst")
	rootCmd.AddCommand(sweepCmd)
}

// sweepConfig layers the config file, then explicitly set flags, over the
// defaults.
func sweepConfig(cmd *cobra.Command) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if sweepConfigPath != "" {
		if err := engine.LoadConfig(sweepConfigPath, &cfg); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("formula") {
		cfg.Formula = sweepFlags.Formula
	}
	if flags.Changed("from") {
		cfg.From = sweepFlags.From
	}
	if flags.Changed("to") {
		cfg.To = sweepFlags.To
	}
	if flags.Changed("points") {
		cfg.Points = sweepFlags.Points
	}
	if flags.Changed("workers") {
		cfg.Workers = sweepFlags.Workers
	}
	if flags.Changed("format") {
		cfg.Format = sweepFlags.Format
	}
	if flags.Changed("out") {
		cfg.Out = sweepFlags.Out
	}
	if flags.Changed("radians") {
		cfg.Degree = !radians
	}
	if flags.Changed("power") {
		cfg.Power = power
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	return cfg, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := sweepConfig(cmd)
	if err != nil {
		return err
	}

	e, err := engine.New(cfg, newLogger())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := e.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.Out != "" {
		return engine.WriteReportFile(cfg.Out, report, cfg.Format)
	}
	return engine.WriteFinal(cmd.OutOrStdout(), report, cfg.Format)
}
