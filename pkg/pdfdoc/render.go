package pdfdoc

import (
	"bytes"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Layout constants, in PDF points.
const (
	marginLeft   = 50.0
	marginTop    = 50.0
	marginRight  = 50.0
	marginBottom = 50.0

	headingScale    = 1.3
	lineHeightScale = 1.4
	headingAdvance  = 1.5
	headingMaxLen   = 40
)

// headingKeywords marks lines rendered at the larger pseudo-heading size.
var headingKeywords = []string{
	"summary", "experience", "education", "skills", "projects",
	"certifications", "awards", "objective", "profile",
}

// Renderer rebuilds a document around optimized text, approximating the
// source document's styling.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

// RenderOptimized produces a new PDF sized like the original's first page,
// flowing the optimized text line by line in the original's dominant body
// style. Lines are not re-wrapped to the margins; they keep their split
// points.
func (r *Renderer) RenderOptimized(original []byte, optimized string) ([]byte, error) {
	width, height, err := FirstPageSize(original)
	if err != nil {
		return nil, err
	}
	spans, err := ExtractSpans(original)
	if err != nil {
		return nil, err
	}
	_, bodySize := dominantStyle(spans)

	pages := layoutText(optimized, width, height, bodySize)

	out, err := writePDF(pages)
	if err != nil {
		return nil, &RenderingError{Err: err}
	}
	if _, err := api.ReadValidateAndOptimize(bytes.NewReader(out), model.NewDefaultConfiguration()); err != nil {
		return nil, &RenderingError{Err: err}
	}
	return out, nil
}

// dominantStyle tallies total character count per (font, size) pair over the
// first page's spans and returns the heaviest pair. Falls back to
// Helvetica 11 when no spans exist.
func dominantStyle(spans []StyledSpan) (string, float64) {
	type styleKey struct {
		font string
		size float64
	}
	tally := map[styleKey]int{}
	for _, s := range spans {
		if s.Page != 0 {
			continue
		}
		tally[styleKey{s.FontName, s.FontSize}] += len([]rune(s.Text))
	}
	if len(tally) == 0 {
		return DefaultFontName, DefaultFontSize
	}
	keys := make([]styleKey, 0, len(tally))
	for k := range tally {
		keys = append(keys, k)
	}
	// deterministic winner on equal tallies
	sort.Slice(keys, func(i, j int) bool {
		if tally[keys[i]] != tally[keys[j]] {
			return tally[keys[i]] > tally[keys[j]]
		}
		if keys[i].font != keys[j].font {
			return keys[i].font < keys[j].font
		}
		return keys[i].size < keys[j].size
	})
	return keys[0].font, keys[0].size
}

// renderedLine is one positioned text line; y is in PDF coordinates
// (origin bottom-left).
type renderedLine struct {
	text string
	size float64
	x, y float64
}

type renderedPage struct {
	width, height float64
	lines         []renderedLine
}

// layoutText flows text top to bottom with a moving cursor, breaking to a new
// page when the cursor passes the bottom margin.
func layoutText(text string, width, height, bodySize float64) []renderedPage {
	lineHeight := bodySize * lineHeightScale

	pages := []renderedPage{{width: width, height: height}}
	cursor := marginTop

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			cursor += lineHeight * 0.5
			continue
		}

		if cursor > height-marginBottom {
			pages = append(pages, renderedPage{width: width, height: height})
			cursor = marginTop
		}

		size := bodySize
		advance := 1.0
		if isHeadingLine(line) {
			size = bodySize * headingScale
			advance = headingAdvance
		}

		p := &pages[len(pages)-1]
		p.lines = append(p.lines, renderedLine{
			text: line,
			size: size,
			x:    marginLeft,
			y:    height - cursor,
		})

		cursor += lineHeight * advance
	}

	return pages
}

// isHeadingLine reports whether a line should render as a pseudo-heading:
// short and containing a section keyword.
func isHeadingLine(line string) bool {
	if len([]rune(line)) >= headingMaxLen {
		return false
	}
	lower := strings.ToLower(line)
	for _, kw := range headingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// WriteTextDocument lays plain text into a fresh single-font document using
// the default body style. Used for smoke runs and test fixtures.
func WriteTextDocument(width, height float64, text string) ([]byte, error) {
	return writePDF(layoutText(text, width, height, DefaultFontSize))
}
