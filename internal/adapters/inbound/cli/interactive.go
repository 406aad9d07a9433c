package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/tui"
	"github.com/abdidvp/pystyle/internal/domain"
)

func newInteractiveCmd(opts *rootOptions) *cobra.Command {
	var prompts bool

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Check, lint, format, fix and benchmark files one at a time",
		Long: "Prompt for Python files and run the full pipeline on each: the rules, the external " +
			"linter, the external formatter, the fixer and a benchmark of both linters.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			in := cmd.InOrStdin()
			if !cmd.Flags().Changed("prompts") {
				prompts = isTerminal(in)
			}
			s := &session{
				opts:    opts,
				cmd:     cmd,
				in:      bufio.NewScanner(in),
				out:     cmd.OutOrStdout(),
				prompts: prompts,
			}
			return s.run(ctx)
		},
	}

	cmd.Flags().BoolVar(&prompts, "prompts", false, "Print prompts even when stdin is not a terminal")

	return cmd
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// session is one run of the interactive loop.
type session struct {
	opts    *rootOptions
	cmd     *cobra.Command
	in      *bufio.Scanner
	out     io.Writer
	prompts bool
}

func (s *session) ask(prompt string) (string, bool) {
	if s.prompts {
		fmt.Fprint(s.out, prompt)
	}
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *session) run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Welcome to pystyle!")
	fmt.Fprintln(s.out, "Check a Python file against the style rules, compare with flake8 and fix what can be fixed.")
	fmt.Fprintln(s.out)

	for ctx.Err() == nil {
		// 1. Ask for a file until one is acceptable.
		input, ok := s.ask("Enter the path to your Python file (or type 'exit' to quit): ")
		if !ok || strings.EqualFold(input, "exit") {
			break
		}
		path := filepath.Clean(input)
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			fmt.Fprintf(s.out, "Error: File '%s' not found. Please try again.\n\n", path)
			continue
		}
		if !strings.HasSuffix(path, ".py") {
			fmt.Fprintf(s.out, "Error: '%s' is not a Python file. Please provide a .py file.\n\n", path)
			continue
		}

		// 2. Run the pipeline.
		if err := s.process(ctx, path); err != nil {
			if errors.Is(err, domain.ErrParseFailure) {
				fmt.Fprintf(s.out, "\nSyntax error in file '%s': %v\n", path, err)
			} else {
				fmt.Fprintf(s.out, "\nAn error occurred while processing the file '%s': %v\n", path, err)
				fmt.Fprintln(s.out, "Skipping this file and continuing to the next one.")
			}
		}

		// 3. Go again?
		answer, ok := s.ask("\nDo you want to check another file? (yes/no): ")
		if !ok || !strings.EqualFold(answer, "yes") {
			break
		}
	}

	fmt.Fprintln(s.out, "Exiting the program. Goodbye!")
	return nil
}

// process runs check, lint, format, fix and compare on path. The external
// tools are optional: their failures are printed and the pipeline goes on.
func (s *session) process(ctx context.Context, path string) error {
	a, err := s.opts.newApp(s.cmd, path)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "\nRunning custom code style checker...")
	report, err := a.check.CheckFile(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, tui.RenderCheckReport(report))

	fmt.Fprintln(s.out, "\nRunning external linter...")
	if name, findings, err := a.compare.Lint(ctx, path); err != nil {
		fmt.Fprintf(s.out, "Could not run the external linter: %v\n", err)
	} else {
		fmt.Fprint(s.out, tui.RenderExternalFindings(name, findings))
	}

	fmt.Fprintln(s.out, "\nRunning external formatter...")
	start, before := time.Now(), a.rss()
	formatter, formatted, err := a.format.Format(ctx, path, false)
	formatTime, formatMem := time.Since(start), a.rss()-before
	if err != nil {
		fmt.Fprintf(s.out, "Could not run the external formatter: %v\n", err)
		formatted = nil
	} else {
		fmt.Fprint(s.out, tui.RenderFormat(formatter, formatted))
	}

	fmt.Fprintln(s.out, "\nFixing custom violations...")
	res, err := a.fix.Fix(ctx, path, domain.FixOptions{})
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, tui.RenderFix(res))

	fmt.Fprintln(s.out, "\nBenchmarking tools...")
	c, err := a.compare.Compare(ctx, path)
	if err != nil {
		fmt.Fprintf(s.out, "Could not benchmark: %v\n", err)
		return nil
	}
	fmt.Fprint(s.out, tui.RenderComparison(c))
	if formatted != nil {
		fmt.Fprint(s.out, tui.RenderBenchmark(formatter, formatTime, formatMem))
	}
	return nil
}
