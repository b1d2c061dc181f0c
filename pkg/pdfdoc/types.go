package pdfdoc

// Formatting flag bits for StyledSpan.Flags.
const (
	FlagBold = 1 << iota
	FlagItalic
)

// StyledSpan is a contiguous run of text sharing one font, size and color
// within a line of a page. Spans are produced in document order: page, then
// block, then line, then span.
type StyledSpan struct {
	Text     string
	FontName string
	FontSize float64
	Color    [3]float64 // RGB, each channel in [0,1]
	BBox     [4]float64 // x0, y0, x1, y1 in page coordinates (origin bottom-left)
	Page     int        // zero-based page index
	Flags    int
}

// Defaults used when a document carries no usable style information.
const (
	DefaultFontName = "Helvetica"
	DefaultFontSize = 11.0
)
