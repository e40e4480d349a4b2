// Package nodelink draws a colored graph as a Graphviz node-link diagram.
//
// [ToDOT] emits undirected DOT source. Vertices are circles filled by color
// class and labeled "v:c" (vertex and color). With [Options.EdgeLabels] each
// edge shows its induced label |c(u) - c(v)|, which makes a graceful
// coloring easy to check by eye: labels around any vertex are distinct.
//
// [Render] lays the source out in-process with
// [github.com/goccy/go-graphviz] and encodes SVG or PNG. SVG output has its
// root element rewritten to a plain viewBox so that it scales cleanly when
// embedded in HTML.
package nodelink
