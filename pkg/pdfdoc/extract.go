package pdfdoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ExtractText returns the concatenation of all pages' plain text in reading
// order, pages separated by a newline. Only the embedded text layer is read;
// scanned (image-only) PDFs yield an empty string.
func ExtractText(pdfBytes []byte) (text string, err error) {
	// The underlying parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &DocumentUnreadableError{Reason: fmt.Sprintf("pdf parse panic: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return "", &DocumentUnreadableError{Reason: "open pdf", Err: err}
	}

	fonts := make(map[string]*pdf.Font)
	var parts []string

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := p.Font(name)
				fonts[name] = &f
			}
		}

		pageText, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			return "", &DocumentUnreadableError{Reason: fmt.Sprintf("read page %d", i), Err: pageErr}
		}
		if trimmed := strings.TrimSpace(pageText); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	return strings.Join(parts, "\n"), nil
}

// PageCount reports how many pages the document has.
func PageCount(pdfBytes []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdfBytes), model.NewDefaultConfiguration())
	if err != nil {
		return 0, &DocumentUnreadableError{Reason: "read pdf", Err: err}
	}
	return ctx.PageCount, nil
}

// FirstPageSize returns the width and height of the document's first page.
func FirstPageSize(pdfBytes []byte) (width, height float64, err error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdfBytes), model.NewDefaultConfiguration())
	if err != nil {
		return 0, 0, &DocumentUnreadableError{Reason: "read pdf", Err: err}
	}
	dims, err := ctx.PageDims()
	if err != nil || len(dims) == 0 {
		return 0, 0, &DocumentUnreadableError{Reason: "no pages", Err: err}
	}
	return dims[0].Width, dims[0].Height, nil
}
