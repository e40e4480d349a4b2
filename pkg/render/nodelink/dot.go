package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gracetower/pkg/coloring"
	"github.com/matzehuels/gracetower/pkg/graph"
	"github.com/matzehuels/gracetower/pkg/render"
)

// Options configures diagram generation.
type Options struct {
	// EdgeLabels prints |c(u) - c(v)| on every edge.
	EdgeLabels bool

	// OriginalIDs labels vertices with their identifiers from the input
	// file instead of the canonical 1..n.
	OriginalIDs bool

	// Title is drawn above the graph when non-empty.
	Title string

	// Palette overrides [render.DefaultPalette].
	Palette render.Palette
}

// ToDOT converts a colored graph to DOT. A nil coloring draws every vertex
// uncolored.
func ToDOT(g *graph.Graph, c coloring.Coloring, opts Options) string {
	palette := opts.Palette
	if palette == nil {
		palette = render.DefaultPalette
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=20;\n", opts.Title)
	}
	buf.WriteString("  node [shape=circle, style=filled, fontsize=14, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontsize=11, fontname=\"Helvetica\", fontcolor=\"#555555\"];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		name := v
		if opts.OriginalIDs {
			name = g.OriginalID(v)
		}
		col := c.Color(v)
		label := strconv.Itoa(name)
		if col > 0 {
			label += ":" + strconv.Itoa(col)
		}
		fmt.Fprintf(&buf, "  %d [label=%q, fillcolor=%q];\n", v, label, palette.Fill(col))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if opts.EdgeLabels && c != nil {
			fmt.Fprintf(&buf, "  %d -- %d [label=\"%d\"];\n", e.U, e.V, c.Label(e))
		} else {
			fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Render lays out dot and encodes it as format. FormatDOT returns the
// source unchanged.
func Render(ctx context.Context, dot string, format render.Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		gvFormat = graphviz.SVG
	case render.FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	if format == render.FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG is shorthand for Render with [render.FormatSVG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, render.FormatSVG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root element with one whose viewBox starts
// at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
