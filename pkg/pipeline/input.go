package pipeline

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/graph"
	gio "github.com/matzehuels/gracetower/pkg/io"
)

// ExpandPaths resolves command-line arguments into input files. Files are
// kept in argument order; a directory contributes its regular, non-hidden
// files in lexical order (not recursively). A nonexistent path is a
// FILE_NOT_FOUND error.
func ExpandPaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no input files")
	}
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.New(errors.ErrCodeFileNotFound, "%s: no such file or directory", p)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "stat %s", p)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", p)
		}
		for _, e := range entries {
			if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			files = append(files, filepath.Join(p, e.Name()))
		}
	}
	return files, nil
}

// GraphName derives the record name of an input file: its base name
// without extension.
func GraphName(path string) string {
	base := filepath.Base(path)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		return name
	}
	return base
}

// LoadFile reads an input file. Files ending in ".json" hold a graph
// document as written by graph.WriteGraph; anything else is an edge list.
func LoadFile(path string) (Input, error) {
	name := GraphName(path)
	if err := errors.ValidateGraphName(name); err != nil {
		return Input{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		g, err := graph.ReadGraphFile(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return Input{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
			}
			return Input{}, errors.Wrap(errors.ErrCodeMalformedInput, err, "%s", path)
		}
		return Input{Name: name, Graph: g}, nil
	}
	pairs, err := gio.ImportEdgeList(path)
	if err != nil {
		return Input{}, err
	}
	return Input{Name: name, Pairs: pairs}, nil
}

// LoadFiles reads every file, stopping at the first failure.
func LoadFiles(paths []string) ([]Input, error) {
	inputs := make([]Input, 0, len(paths))
	for _, p := range paths {
		in, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
