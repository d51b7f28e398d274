package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wildfunctions/fxeval/pkg/evaluator"
)

const replPrompt = "fx> "

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate formulas line by line",
	Long: `Repl reads one formula per line and prints its value at the current point.

  x = <formula>   set the point (the right side is evaluated first)
  :deg, :rad      switch the angle mode
  :quit           leave (as does end of input)`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

var errQuit = errors.New("quit")

// session holds the REPL state between lines.
type session struct {
	x      float64
	degree bool
	opts   []evaluator.Option
}

// handle processes one input line and returns the text to print.
func (s *session) handle(line string) (string, error) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return "", nil
	case ":quit", ":q":
		return "", errQuit
	case ":deg":
		s.degree = true
		return "degrees", nil
	case ":rad":
		s.degree = false
		return "radians", nil
	}

	if name, rhs, ok := strings.Cut(line, "="); ok {
		name = strings.ToLower(strings.TrimSpace(name))
		if len(name) != 1 || name[0] < 'a' || name[0] > 'z' {
			return "", fmt.Errorf("cannot assign to %q", name)
		}
		v, err := evaluator.New(rhs, s.degree, s.opts...).EvaluateAt(s.x)
		if err != nil {
			return "", err
		}
		s.x = v
		return fmt.Sprintf("%s = %s", name, formatValue(v)), nil
	}

	v, err := evaluator.New(line, s.degree, s.opts...).EvaluateAt(s.x)
	if err != nil {
		return "", err
	}
	return formatValue(v), nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func runREPL(cmd *cobra.Command, args []string) error {
	opts, err := evaluatorOptions()
	if err != nil {
		return err
	}
	s := &session{degree: !radians, opts: opts}

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return interactive(s, cmd.OutOrStdout())
	}
	return scan(s, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// interactive runs the session on a terminal with line editing.
func interactive(s *session, out io.Writer) error {
	rl, err := readline.New(replPrompt)
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return nil
		}
		if quit := respond(s, line, out, rl.Stderr()); quit {
			return nil
		}
	}
}

// scan runs the session over piped input without prompting.
func scan(s *session, in io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if quit := respond(s, scanner.Text(), out, errOut); quit {
			return nil
		}
	}
	return scanner.Err()
}

func respond(s *session, line string, out, errOut io.Writer) bool {
	text, err := s.handle(line)
	if errors.Is(err, errQuit) {
		return true
	}
	if err != nil {
		fmt.Fprintln(errOut, color.RedString("%v", err))
		return false
	}
	if text != "" {
		fmt.Fprintln(out, text)
	}
	return false
}
