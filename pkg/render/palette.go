package render

// Palette assigns fill colors to color classes. Classes beyond its length
// wrap around.
type Palette []string

// DefaultPalette is a 12-class qualitative palette with dark text contrast.
var DefaultPalette = Palette{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// Fill returns the fill for class c (1-based). Class 0 and below, meaning
// uncolored, is white.
func (p Palette) Fill(c int) string {
	if c < 1 || len(p) == 0 {
		return "#ffffff"
	}
	return p[(c-1)%len(p)]
}
