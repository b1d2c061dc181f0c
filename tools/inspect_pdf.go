package main

import (
	"fmt"
	"os"

	"resume-optimizer/internal/usecase"
	"resume-optimizer/pkg/pdfdoc"
)

// Debug helper: dump the styled spans and the section map of a PDF.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect_pdf <file.pdf>")
		os.Exit(2)
	}
	b, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(2)
	}

	spans, err := pdfdoc.ExtractSpans(b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spans: %v\n", err)
		os.Exit(2)
	}
	for _, s := range spans {
		fmt.Printf("p%d %-24s %5.1f rgb(%.2f,%.2f,%.2f) [%.1f %.1f %.1f %.1f] %q\n",
			s.Page, s.FontName, s.FontSize, s.Color[0], s.Color[1], s.Color[2],
			s.BBox[0], s.BBox[1], s.BBox[2], s.BBox[3], s.Text)
	}

	text, err := pdfdoc.ExtractText(b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "text: %v\n", err)
		os.Exit(2)
	}
	sections := usecase.IdentifySections(text)
	for _, name := range sections.Names() {
		fmt.Printf("section %s: %d chars\n", name, len(sections[name]))
	}
}
