package io

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/graph"
)

func TestReadEdgeList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []graph.Pair
	}{
		{"simple", "1 2\n2 3\n", []graph.Pair{{U: 1, V: 2}, {U: 2, V: 3}}},
		{"tabs and crlf", "1\t2\r\n3   4\r\n", []graph.Pair{{U: 1, V: 2}, {U: 3, V: 4}}},
		{"comments", "% header\n# note\n  # indented\n5 6\n", []graph.Pair{{U: 5, V: 6}}},
		{"loops and duplicates kept", "1 1\n1 2\n2 1\n", []graph.Pair{{U: 1, V: 1}, {U: 1, V: 2}, {U: 2, V: 1}}},
		{"negative ids", "-3 7\n", []graph.Pair{{U: -3, V: 7}}},
		{"no trailing newline", "8 9", []graph.Pair{{U: 8, V: 9}}},
		{"empty input", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEdgeList(tt.input)
			if err != nil {
				t.Fatalf("ParseEdgeList() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseEdgeList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadEdgeListMalformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine string
	}{
		{"blank line", "1 2\n\n3 4\n", "line 2"},
		{"whitespace only", "1 2\n   \n", "line 2"},
		{"one field", "1 2\n3\n", "line 2"},
		{"three fields", "1 2 3\n", "line 1"},
		{"not an integer", "1 2\n2 x\n", "line 2"},
		{"float", "1.5 2\n", "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEdgeList(tt.input)
			if !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Fatalf("ParseEdgeList() error = %v, want MALFORMED_INPUT", err)
			}
			if !strings.Contains(err.Error(), tt.wantLine) {
				t.Errorf("error %q should mention %q", err, tt.wantLine)
			}
		})
	}
}

func TestImportEdgeList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p4.txt")
	if err := os.WriteFile(path, []byte("1 2\n2 3\n3 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	pairs, err := ImportEdgeList(path)
	if err != nil {
		t.Fatalf("ImportEdgeList() error: %v", err)
	}
	if len(pairs) != 3 {
		t.Errorf("ImportEdgeList() = %d pairs, want 3", len(pairs))
	}

	_, err = ImportEdgeList(filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportEdgeList(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteCSV(t *testing.T) {
	records := []Record{
		{Graph: "p4", Vertices: 4, Edges: 3, Density: 0.5, MaxDegree: 2, MinDegree: 1, HeuristicSpan: 4, SolvedSpan: 3, TimeMS: 12, Status: "optimal"},
		{Graph: "a,b", Vertices: 1, Status: "error"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(records, &buf); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	want := "graph,vertices,edges,density,max_degree,min_degree,heuristic_span,solved_span,time_ms,status\n" +
		"p4,4,3,0.500000,2,1,4,3,12,optimal\n" +
		"\"a,b\",1,0,0.000000,0,0,0,0,0,error\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", got, want)
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ExportCSV(nil, path); err != nil {
		t.Fatalf("ExportCSV() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != strings.Join(Header, ",") {
		t.Errorf("ExportCSV(nil) = %q, want header only", got)
	}
}
