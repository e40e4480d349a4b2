package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Header is the first row of every results table.
var Header = []string{
	"graph", "vertices", "edges", "density", "max_degree", "min_degree",
	"heuristic_span", "solved_span", "time_ms", "status",
}

// Record is the result of processing one graph.
type Record struct {
	RunID         string    `json:"run_id,omitempty" bson:"run_id,omitempty"`
	Graph         string    `json:"graph" bson:"graph"`
	Hash          string    `json:"hash,omitempty" bson:"hash,omitempty"`
	Vertices      int       `json:"vertices" bson:"vertices"`
	Edges         int       `json:"edges" bson:"edges"`
	Density       float64   `json:"density" bson:"density"`
	MaxDegree     int       `json:"max_degree" bson:"max_degree"`
	MinDegree     int       `json:"min_degree" bson:"min_degree"`
	Components    int       `json:"components" bson:"components"`
	HeuristicSpan int       `json:"heuristic_span" bson:"heuristic_span"`
	SolvedSpan    int       `json:"solved_span" bson:"solved_span"`
	TimeMS        int64     `json:"time_ms" bson:"time_ms"`
	Status        string    `json:"status" bson:"status"`
	Backend       string    `json:"backend,omitempty" bson:"backend,omitempty"`
	Coloring      []int     `json:"coloring,omitempty" bson:"coloring,omitempty"`
	Error         string    `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// Row returns the CSV fields of r in [Header] order.
func (r Record) Row() []string {
	return []string{
		r.Graph,
		strconv.Itoa(r.Vertices),
		strconv.Itoa(r.Edges),
		strconv.FormatFloat(r.Density, 'f', 6, 64),
		strconv.Itoa(r.MaxDegree),
		strconv.Itoa(r.MinDegree),
		strconv.Itoa(r.HeuristicSpan),
		strconv.Itoa(r.SolvedSpan),
		strconv.FormatInt(r.TimeMS, 10),
		r.Status,
	}
}

// WriteCSV writes the header followed by one row per record.
func WriteCSV(records []Record, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("write %s: %w", r.Graph, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes records to a CSV file at path, replacing it.
func ExportCSV(records []Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(records, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
