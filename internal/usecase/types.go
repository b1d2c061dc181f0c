package usecase

import (
	"context"

	"resume-optimizer/internal/domain"

	"github.com/google/uuid"
)

// Optimizer rewrites resume text via the remote generation service.
type Optimizer interface {
	OptimizeResume(ctx context.Context, text string) (string, error)
}

// Renderer rebuilds a PDF around the optimized text, approximating the
// source document's styling.
type Renderer interface {
	RenderOptimized(original []byte, optimized string) ([]byte, error)
}

// JobsRepo persists optimization jobs. A nil repo is tolerated everywhere;
// persistence is best-effort.
type JobsRepo interface {
	Save(ctx context.Context, j *domain.OptimizeJob) error
	Get(ctx context.Context, id uuid.UUID) (*domain.OptimizeJob, error)
}

// RunResult carries the pipeline output plus diagnostics gathered along the
// way.
type RunResult struct {
	PDF       []byte
	Sections  []string
	TextChars int
	SpanCount int
}
