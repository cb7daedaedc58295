// Command prove is the CLI driver spec.md §6 describes: load a library
// file, parse hypothesis/target formulas, run the waterfall to a
// terminal result, and report the tableau. Grounded on
// theRebelliousNerd-codenerd/cmd/nerd/main.go's cobra root-command/
// persistent-flag/zap-logger wiring, cut down to this driver's much
// smaller surface.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/proofdroid/prover/pkg/library"
	"github.com/proofdroid/prover/pkg/parser"
	"github.com/proofdroid/prover/pkg/printer"
	"github.com/proofdroid/prover/pkg/prover"
)

var (
	verbose     bool
	unicode     bool
	libraryPath string
	moveBudget  int
	wallBudget  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "prove",
	Short: "A first-order tableau theorem prover",
	Long: `prove loads hypotheses and a target formula, optionally a
library of prior theorems and definitions, and runs the waterfall
scheduler to a proved/stuck/budget-exceeded result.`,
}

var runCmd = &cobra.Command{
	Use:   "run [hypothesis...] --target=FORMULA",
	Short: "Load hypotheses and a target, then automate to a result",
	RunE:  runProve,
}

var target string

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every move attempt, not just applied ones")
	rootCmd.PersistentFlags().BoolVar(&unicode, "unicode", true, "Print formulas in Unicode rather than REPR notation")
	rootCmd.PersistentFlags().StringVar(&libraryPath, "library", "", "Path to a YAML theorem/definition library to preload")
	rootCmd.PersistentFlags().IntVar(&moveBudget, "move-budget", 0, "Maximum waterfall passes (0 = unbounded)")
	rootCmd.PersistentFlags().DurationVar(&wallBudget, "wall-budget", 0, "Maximum wall-clock time (0 = unbounded)")

	runCmd.Flags().StringVar(&target, "target", "", "Target formula, REPR notation (required)")
	runCmd.MarkFlagRequired("target")

	rootCmd.AddCommand(runCmd)
}

func runProve(cmd *cobra.Command, args []string) error {
	cfg := prover.Config{MoveBudget: moveBudget, WallClockBudget: wallBudget, Silent: !verbose}
	p, err := prover.New(cfg)
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}

	for _, src := range args {
		f, err := parser.Parse(src)
		if err != nil {
			return fmt.Errorf("prove: parsing hypothesis %q: %w", src, err)
		}
		if _, err := p.AddHypothesis(f); err != nil {
			return fmt.Errorf("prove: %w", err)
		}
	}

	goal, err := parser.Parse(target)
	if err != nil {
		return fmt.Errorf("prove: parsing target %q: %w", target, err)
	}
	if _, err := p.AddTarget(goal); err != nil {
		return fmt.Errorf("prove: %w", err)
	}

	if err := p.Load(); err != nil {
		return fmt.Errorf("prove: %w", err)
	}

	if libraryPath != "" {
		if err := library.LoadFile(libraryPath, p); err != nil {
			return fmt.Errorf("prove: loading library: %w", err)
		}
	}

	result, err := p.Automate(cfg)
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}

	format := printer.REPR
	if unicode {
		format = printer.Unicode
	}
	pr := printer.New(format)

	fmt.Fprintln(cmd.OutOrStdout(), pr.TableauString(p.Tab))
	fmt.Fprintf(cmd.OutOrStdout(), "result: %s\n", result)

	if !prover.Proved(result) {
		os.Exit(1)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
