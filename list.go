package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wildfunctions/fxeval/pkg/funcs"
)

var funcsCmd = &cobra.Command{
	Use:   "funcs",
	Short: "List the available functions and constants",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeFuncs(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(funcsCmd)
}

func writeFuncs(w io.Writer) {
	fmt.Fprintln(w, color.CyanString("Functions"))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range funcs.Names() {
		fn, _ := funcs.Lookup(name)
		fmt.Fprintf(tw, "  %s(x)\t%s\t%s\n", name, fn.Mode, fmt.Sprintf(fn.LaTeX, "x"))
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, color.CyanString("Constants"))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range funcs.ConstantNames() {
		c, _ := funcs.LookupConstant(name)
		fmt.Fprintf(tw, "  %s\t%s\n", name, formatValue(c.Value))
	}
	tw.Flush()
}
