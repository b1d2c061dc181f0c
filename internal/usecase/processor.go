package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"resume-optimizer/internal/domain"
)

// Processor sequences the pipeline: extract → classify → optimize → render.
// Each stage's failure aborts the run; no partial output is returned.
type Processor struct {
	optimizer Optimizer
	renderer  Renderer
	repo      JobsRepo
	outDir    string
}

func NewProcessor(optimizer Optimizer, renderer Renderer, repo JobsRepo, outDir string) *Processor {
	return &Processor{optimizer: optimizer, renderer: renderer, repo: repo, outDir: outDir}
}

// Run executes the pipeline over raw PDF bytes and returns the optimized PDF.
func (p *Processor) Run(ctx context.Context, pdfBytes []byte) (*RunResult, error) {
	slog.Info("starting resume optimization", "input_bytes", len(pdfBytes))

	text, spans, err := p.extractStage(pdfBytes)
	if err != nil {
		return nil, err
	}

	sections := p.classifyStage(text)

	optimized, err := p.optimizeStage(ctx, text)
	if err != nil {
		return nil, err
	}

	out, err := p.renderStage(pdfBytes, optimized)
	if err != nil {
		return nil, err
	}

	slog.Info("resume optimization complete", "output_bytes", len(out))
	return &RunResult{
		PDF:       out,
		Sections:  sections.Names(),
		TextChars: len(text),
		SpanCount: len(spans),
	}, nil
}

// Process is the job-facing wrapper around Run: it tracks status transitions,
// writes the output artifact and saves the job. Repo saves are best-effort.
func (p *Processor) Process(ctx context.Context, job *domain.OptimizeJob, pdfBytes []byte) error {
	job.Status = domain.StatusProcessing
	job.UpdatedAt = time.Now()
	p.saveJob(ctx, job)

	res, err := p.Run(ctx, pdfBytes)
	if err != nil {
		job.Status = domain.StatusFailed
		job.Error = err.Error()
		job.UpdatedAt = time.Now()
		p.saveJob(ctx, job)
		return err
	}

	outPath, err := p.writeArtifact(res.PDF)
	if err != nil {
		job.Status = domain.StatusFailed
		job.Error = err.Error()
		job.UpdatedAt = time.Now()
		p.saveJob(ctx, job)
		return err
	}

	job.Status = domain.StatusCompleted
	job.Metadata["output_path"] = outPath
	job.Metadata["sections"] = res.Sections
	job.Metadata["text_chars"] = res.TextChars
	job.Metadata["span_count"] = res.SpanCount
	job.UpdatedAt = time.Now()
	p.saveJob(ctx, job)
	return nil
}

func (p *Processor) writeArtifact(pdf []byte) (string, error) {
	if err := os.MkdirAll(p.outDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("optimized_%s.pdf", time.Now().Format("20060102T150405"))
	outPath := filepath.Join(p.outDir, name)
	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}

func (p *Processor) saveJob(ctx context.Context, job *domain.OptimizeJob) {
	if p.repo == nil {
		return
	}
	if err := p.repo.Save(ctx, job); err != nil {
		slog.Warn("failed to save job", "job_id", job.ID, "error", err)
	}
}
