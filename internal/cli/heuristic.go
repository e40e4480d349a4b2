package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gracetower/pkg/config"
	"github.com/matzehuels/gracetower/pkg/pipeline"
)

// heuristicCommand creates the heuristic command.
func (c *CLI) heuristicCommand() *cobra.Command {
	var (
		noCache  bool
		colors   bool
		jobs     int
		maxShown int
	)

	cmd := &cobra.Command{
		Use:   "heuristic <file|dir>...",
		Short: "Compute greedy graceful colorings without solving exactly",
		Long: `Heuristic colors every vertex in rounds: each round picks a set of uncolored
vertices pairwise at distance three or more, in ascending vertex order, and
gives the round's color to those that keep all edge labels distinct. The span
of the result is an upper bound on the graceful chromatic number.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			files, err := pipeline.ExpandPaths(args)
			if err != nil {
				return err
			}
			inputs, err := pipeline.LoadFiles(files)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			// The greedy stage never reaches a solver or an archive.
			cfg.Archive.Backend = config.ArchiveNone
			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			if !cmd.Flags().Changed("jobs") {
				jobs = cfg.Batch.Jobs
			}
			records, batchErr := runner.Batch(ctx, inputs, pipeline.Options{
				HeuristicOnly: true,
				Logger:        loggerFromContext(ctx),
			}, jobs)

			headers := []string{"graph", "n", "m", "Δ", "span", "components"}
			if colors {
				headers = append(headers, "coloring")
			}
			rows := make([][]string, len(records))
			for i, r := range records {
				rows[i] = []string{
					r.Graph,
					strconv.Itoa(r.Vertices),
					strconv.Itoa(r.Edges),
					strconv.Itoa(r.MaxDegree),
					strconv.Itoa(r.HeuristicSpan),
					strconv.Itoa(r.Components),
				}
				if colors {
					rows[i] = append(rows[i], formatColoring(r.Coloring, maxShown))
				}
			}
			printTable(headers, rows, -1)
			return batchErr
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the cache")
	cmd.Flags().BoolVar(&colors, "colors", false, "print the colorings")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "graphs colored in parallel (default: number of CPUs)")
	cmd.Flags().IntVar(&maxShown, "max-shown", 20, "vertices shown per coloring")

	return cmd
}

// formatColoring renders "v:c" pairs, eliding after limit vertices.
func formatColoring(colors []int, limit int) string {
	var b strings.Builder
	for i, col := range colors {
		if limit > 0 && i == limit {
			b.WriteString(" …")
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(col))
	}
	return b.String()
}
