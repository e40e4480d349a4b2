package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Wire Format
// =============================================================================

// Document is the JSON serialization of a [Graph].
type Document struct {
	Vertices int      `json:"vertices" bson:"vertices"`
	Edges    [][2]int `json:"edges" bson:"edges"`
	IDs      []int    `json:"ids,omitempty" bson:"ids,omitempty"`
}

// ToDocument converts g to its wire format.
func ToDocument(g *Graph) Document {
	doc := Document{
		Vertices: g.n,
		Edges:    make([][2]int, len(g.edges)),
		IDs:      g.OriginalIDs(),
	}
	for i, e := range g.edges {
		doc.Edges[i] = [2]int{e.U, e.V}
	}
	return doc
}

// FromDocument validates doc and builds the graph it describes.
func FromDocument(doc Document) (*Graph, error) {
	if doc.IDs != nil && len(doc.IDs) != doc.Vertices {
		return nil, fmt.Errorf("ids: got %d, want %d", len(doc.IDs), doc.Vertices)
	}
	edges := make([]Edge, len(doc.Edges))
	for i, e := range doc.Edges {
		edges[i] = Edge{U: e[0], V: e[1]}
	}
	g, err := New(doc.Vertices, edges)
	if err != nil {
		return nil, err
	}
	if doc.IDs != nil {
		g.ids = doc.IDs
	}
	return g, nil
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to JSON bytes. The output is deterministic, so
// its hash identifies the graph in cache keys.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalStructure is MarshalGraph without the original identifiers. Graphs
// that are [Graph.Equal] marshal to identical bytes, which makes the output
// the cache identity of a graph regardless of how its input was labeled.
func MarshalStructure(g *Graph) ([]byte, error) {
	doc := ToDocument(g)
	doc.IDs = nil
	return json.Marshal(doc)
}

// WriteGraph writes a graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// WriteGraphFile writes a graph to a JSON file.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(ToDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromDocument(doc)
}
