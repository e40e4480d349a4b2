package render

import (
	"fmt"
	"strings"
)

// Format is an output encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatDOT Format = "dot"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatSVG, FormatPNG, FormatDOT}

// ParseFormat accepts a format name or a file extension such as ".svg".
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	switch f {
	case FormatSVG, FormatPNG, FormatDOT:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q (want svg, png or dot)", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }
