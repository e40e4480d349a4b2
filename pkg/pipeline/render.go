package pipeline

import (
	"context"

	"github.com/matzehuels/gracetower/pkg/render"
	"github.com/matzehuels/gracetower/pkg/render/nodelink"
)

// RenderOptions configures Render.
type RenderOptions struct {
	Format      render.Format
	EdgeLabels  bool
	OriginalIDs bool
}

// Render draws the graph of r with its best coloring.
func (r *Result) Render(ctx context.Context, opts RenderOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = render.FormatSVG
	}
	dot := nodelink.ToDOT(r.Graph, r.Coloring, nodelink.Options{
		EdgeLabels:  opts.EdgeLabels,
		OriginalIDs: opts.OriginalIDs,
		Title:       r.String(),
	})
	return nodelink.Render(ctx, dot, opts.Format)
}
