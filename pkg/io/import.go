package io

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/graph"
)

// maxLineBytes bounds a single edge-list line.
const maxLineBytes = 1 << 20

// ReadEdgeList parses an edge list from r. Comment lines are skipped; every
// other line must hold exactly two integers. The first malformed line stops
// parsing with a MALFORMED_INPUT error.
//
// ReadEdgeList does not close r.
func ReadEdgeList(r io.Reader) ([]graph.Pair, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var pairs []graph.Pair
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if isComment(text) {
			continue
		}
		p, err := parseEdge(text)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "line %d", line)
		}
		pairs = append(pairs, p)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "line %d", line+1)
	}
	return pairs, nil
}

// ImportEdgeList reads the edge list at path. A missing file is a
// FILE_NOT_FOUND error.
func ImportEdgeList(path string) ([]graph.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadEdgeList(f)
}

// ParseEdgeList parses an in-memory edge list.
func ParseEdgeList(s string) ([]graph.Pair, error) {
	return ReadEdgeList(strings.NewReader(s))
}

func isComment(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "%")
}

func parseEdge(line string) (graph.Pair, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return graph.Pair{}, errors.New(errors.ErrCodeMalformedInput, "empty record")
	case 2:
	default:
		return graph.Pair{}, errors.New(errors.ErrCodeMalformedInput, "want 2 fields, got %d", len(fields))
	}
	u, err := strconv.Atoi(fields[0])
	if err != nil {
		return graph.Pair{}, errors.New(errors.ErrCodeMalformedInput, "not an integer: %q", fields[0])
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return graph.Pair{}, errors.New(errors.ErrCodeMalformedInput, "not an integer: %q", fields[1])
	}
	return graph.Pair{U: u, V: v}, nil
}
