package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gracetower/pkg/coloring"
	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/model"
	"github.com/matzehuels/gracetower/pkg/pipeline"
	"github.com/matzehuels/gracetower/pkg/solver/highs"
)

// modelCommand creates the model command.
func (c *CLI) modelCommand() *cobra.Command {
	var (
		output      string
		noWarmStart bool
		statsOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "model <file>",
		Short: "Export the integer program of a graph in CPLEX LP or MPS format",
		Long: `Model builds the integer program whose optimum is the graceful chromatic
number of the graph and writes it in CPLEX LP format, for use with any external
MIP solver. An output file ending in .mps is written as MPS by HiGHS instead.
The heuristic coloring bounds the span variable unless --no-warm-start is given.`,
		Example: `  gracetower model petersen.txt -o petersen.lp
  gracetower model petersen.txt -o petersen.mps
  gracetower model petersen.txt --stats`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			in, err := pipeline.LoadFile(args[0])
			if err != nil {
				return err
			}
			g := in.Canonical()

			opts := model.Options{Logger: logger}
			if !noWarmStart {
				h, err := coloring.Greedy(g, coloring.Options{Logger: logger})
				if err != nil {
					return err
				}
				opts.WarmStart = h
			}
			m, err := model.Build(g, opts)
			if err != nil {
				return err
			}

			if statsOnly {
				printModelStats(in.Name, m.Stats(), m.WarmSpan())
				return nil
			}

			if exportsMPS(output) {
				if err := errors.ValidatePath(output); err != nil {
					return err
				}
				if err := highs.WriteModel(m, output); err != nil {
					return err
				}
				printSuccess("Wrote MPS model of %s (%d variables, %d constraints)", in.Name, m.NumVars(), m.NumConstraints())
				printFile(output)
				return nil
			}

			var w io.Writer = os.Stdout
			if output != "" && output != "-" {
				if err := errors.ValidatePath(output); err != nil {
					return err
				}
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := m.WriteLP(w); err != nil {
				return err
			}
			if w != os.Stdout {
				printSuccess("Wrote model of %s (%d variables, %d constraints)", in.Name, m.NumVars(), m.NumConstraints())
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noWarmStart, "no-warm-start", false, "do not bound the span by the heuristic coloring")
	cmd.Flags().BoolVar(&statsOnly, "stats", false, "print model statistics instead of the model")

	return cmd
}

// exportsMPS reports whether output names an MPS file, which HiGHS writes.
func exportsMPS(output string) bool {
	return strings.EqualFold(filepath.Ext(output), ".mps")
}

func printModelStats(name string, s model.Stats, warmSpan int) {
	fmt.Println(StyleTitle.Render(name))
	printKeyValue("vertices", strconv.Itoa(s.Vertices))
	printKeyValue("edges", strconv.Itoa(s.Edges))
	printKeyValue("max degree", strconv.Itoa(s.MaxDegree))
	printKeyValue("BigM1", strconv.Itoa(s.BigM1))
	printKeyValue("BigM2", strconv.Itoa(s.BigM2))
	printKeyValue("distance-2", strconv.Itoa(s.Distance))
	printKeyValue("triples", strconv.Itoa(s.Triples))
	printKeyValue("variables", strconv.Itoa(s.Variables))
	printKeyValue("constraints", strconv.Itoa(s.Constraints))
	if warmSpan > 0 {
		printKeyValue("warm span", strconv.Itoa(warmSpan))
	}
}
