// Package render draws colored graphs.
//
// The root package holds what every renderer shares: the output [Format]s and
// the [Palette] that maps color classes to fills. The [nodelink] subpackage
// produces Graphviz drawings in which every vertex is filled by its color
// class and every edge carries its induced label:
//
//	dot := nodelink.ToDOT(g, c, nodelink.Options{EdgeLabels: true})
//	svg, err := nodelink.Render(ctx, dot, render.FormatSVG)
//
// [nodelink]: github.com/matzehuels/gracetower/pkg/render/nodelink
package render
