package usecase

import (
	"context"
	"log/slog"
	"strings"

	"resume-optimizer/pkg/pdfdoc"
)

// extractStage pulls the plain text and the styled spans out of the source
// document. A document with no extractable text (image-only or corrupted) is
// rejected here so later stages never see empty input.
func (p *Processor) extractStage(pdfBytes []byte) (string, []pdfdoc.StyledSpan, error) {
	slog.Info("extracting text from pdf")
	text, err := pdfdoc.ExtractText(pdfBytes)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(text) == "" {
		return "", nil, &pdfdoc.DocumentUnreadableError{
			Reason: "no extractable text; the file may be image-based or corrupted",
		}
	}

	spans, err := pdfdoc.ExtractSpans(pdfBytes)
	if err != nil {
		return "", nil, err
	}

	slog.Info("extracted text", "chars", len(text), "spans", len(spans))
	return text, spans, nil
}

// classifyStage splits the text into named sections for diagnostics only.
func (p *Processor) classifyStage(text string) SectionMap {
	slog.Info("identifying resume sections")
	sections := IdentifySections(text)
	slog.Info("found sections", "names", sections.Names())
	return sections
}

// optimizeStage makes the single remote call. No retries; failure is the
// pipeline's failure.
func (p *Processor) optimizeStage(ctx context.Context, text string) (string, error) {
	slog.Info("optimizing content")
	optimized, err := p.optimizer.OptimizeResume(ctx, text)
	if err != nil {
		return "", err
	}
	slog.Info("optimized text", "chars", len(optimized))
	return optimized, nil
}

// renderStage rebuilds the document around the optimized text.
func (p *Processor) renderStage(original []byte, optimized string) ([]byte, error) {
	slog.Info("generating optimized pdf")
	out, err := p.renderer.RenderOptimized(original, optimized)
	if err != nil {
		return nil, err
	}
	slog.Info("generated pdf", "bytes", len(out))
	return out, nil
}
