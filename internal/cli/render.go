package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/pipeline"
	"github.com/matzehuels/gracetower/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output        string // output file; default <graph>.<format>
	format        string // svg, png or dot
	heuristicOnly bool   // draw the greedy coloring without solving
	noEdgeLabels  bool   // omit |c(u)-c(v)| on edges
	originalIDs   bool   // label vertices with input identifiers
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		sf   solverFlags
		opts = renderOpts{format: string(render.FormatSVG)}
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Draw a graph with its graceful coloring",
		Long: `Render solves the graph (or only colors it greedily with --heuristic-only) and
draws it with Graphviz: vertices are filled by color and labeled "vertex:color",
edges carry their induced labels.`,
		Example: `  gracetower render petersen.txt
  gracetower render petersen.txt --format png -o petersen.png
  gracetower render big.txt --heuristic-only --format dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(opts.format)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "format")
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := sf.apply(cmd, &cfg); err != nil {
				return err
			}
			in, err := pipeline.LoadFile(args[0])
			if err != nil {
				return err
			}

			output := opts.output
			if output == "" {
				output = in.Name + format.Ext()
			}
			if err := errors.ValidatePath(output); err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg, sf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			spinner := newSpinnerWithContext(ctx, "Coloring "+in.Name)
			spinner.Start()
			res, err := runner.Execute(ctx, in, pipeline.Options{
				TimeLimit:     cfg.Solver.TimeLimit.Std(),
				NoWarmStart:   !cfg.Solver.WarmStart,
				HeuristicOnly: opts.heuristicOnly,
				Refresh:       sf.refresh,
				ResultTTL:     cfg.Cache.TTL.Std(),
				Logger:        loggerFromContext(ctx),
			})
			spinner.Stop()
			if err != nil {
				if res == nil {
					return err
				}
				printWarning("exact solve failed, drawing the heuristic coloring: %s", errors.UserMessage(err))
			}

			data, err := res.Render(ctx, pipeline.RenderOptions{
				Format:      format,
				EdgeLabels:  !opts.noEdgeLabels,
				OriginalIDs: opts.originalIDs,
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Rendered %s with %d colors", in.Name, res.Coloring.Span())
			printFile(output)
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <graph>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png or dot")
	cmd.Flags().BoolVar(&opts.heuristicOnly, "heuristic-only", false, "draw the greedy coloring without solving")
	cmd.Flags().BoolVar(&opts.noEdgeLabels, "no-edge-labels", false, "omit edge labels")
	cmd.Flags().BoolVar(&opts.originalIDs, "original-ids", false, "label vertices with their input identifiers")

	return cmd
}
