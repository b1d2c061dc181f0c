package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"resume-optimizer/internal/domain"
	"resume-optimizer/pkg/pdfdoc"

	"github.com/google/uuid"
)

// echoOptimizer returns a fixed rewrite without any remote call.
type echoOptimizer struct {
	out string
	err error
}

func (e *echoOptimizer) OptimizeResume(ctx context.Context, text string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	if e.out != "" {
		return e.out, nil
	}
	return text, nil
}

// memRepo stores jobs in a map; good enough to observe status transitions.
type memRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]domain.OptimizeJob
}

func newMemRepo() *memRepo {
	return &memRepo{jobs: map[uuid.UUID]domain.OptimizeJob{}}
}

func (m *memRepo) Save(ctx context.Context, j *domain.OptimizeJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = *j
	return nil
}

func (m *memRepo) Get(ctx context.Context, id uuid.UUID) (*domain.OptimizeJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, errors.New("job not found")
	}
	return &j, nil
}

func samplePDF(t *testing.T) []byte {
	t.Helper()
	b, err := pdfdoc.WriteTextDocument(612, 792, strings.Join([]string{
		"Jane Doe",
		"jane@example.com",
		"Experience",
		"Acme Corp, built things",
		"Education",
		"State University",
	}, "\n"))
	if err != nil {
		t.Fatalf("build sample pdf: %v", err)
	}
	return b
}

func TestRunProducesOptimizedPDF(t *testing.T) {
	p := NewProcessor(&echoOptimizer{out: "Rewritten resume\nwith stronger wording"}, pdfdoc.NewRenderer(), nil, t.TempDir())

	res, err := p.Run(context.Background(), samplePDF(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.PDF) == 0 {
		t.Fatal("empty output pdf")
	}
	if res.TextChars == 0 || res.SpanCount == 0 {
		t.Errorf("diagnostics not populated: %+v", res)
	}

	text, err := pdfdoc.ExtractText(res.PDF)
	if err != nil {
		t.Fatalf("re-extract output: %v", err)
	}
	if !strings.Contains(text, "Rewritten resume") {
		t.Errorf("output text = %q, want the optimizer's rewrite", text)
	}

	if len(res.Sections) == 0 {
		t.Errorf("sections = %v, want at least the default bucket", res.Sections)
	}
}

func TestRunEchoRoundTripMultiPage(t *testing.T) {
	var lines []string
	for i := 1; i <= 30; i++ {
		lines = append(lines, fmt.Sprintf("Delivered milestone %d", i))
	}
	// 30 lines on a 250pt-tall page forces a multi-page source.
	src, err := pdfdoc.WriteTextDocument(612, 250, strings.Join(lines, "\n"))
	if err != nil {
		t.Fatalf("build fixture: %v", err)
	}
	if n, err := pdfdoc.PageCount(src); err != nil || n < 2 {
		t.Fatalf("fixture pages = %d (%v), want >= 2", n, err)
	}

	p := NewProcessor(&echoOptimizer{}, pdfdoc.NewRenderer(), nil, t.TempDir())
	res, err := p.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	text, err := pdfdoc.ExtractText(res.PDF)
	if err != nil {
		t.Fatalf("re-extract output: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		t.Fatal("output has no extractable text")
	}
	if !strings.Contains(text, "Delivered milestone 30") {
		t.Errorf("echoed content lost: %q", text)
	}
	if n, err := pdfdoc.PageCount(res.PDF); err != nil || n < 1 {
		t.Errorf("output pages = %d (%v), want >= 1", n, err)
	}
}

func TestRunRejectsEmptyDocument(t *testing.T) {
	empty, err := pdfdoc.WriteTextDocument(612, 792, "")
	if err != nil {
		t.Fatalf("build empty pdf: %v", err)
	}

	p := NewProcessor(&echoOptimizer{}, pdfdoc.NewRenderer(), nil, t.TempDir())
	_, err = p.Run(context.Background(), empty)

	var unreadable *pdfdoc.DocumentUnreadableError
	if !errors.As(err, &unreadable) {
		t.Fatalf("want DocumentUnreadableError, got %v", err)
	}
}

func TestProcessCompletesJobAndWritesArtifact(t *testing.T) {
	repo := newMemRepo()
	outDir := t.TempDir()
	p := NewProcessor(&echoOptimizer{}, pdfdoc.NewRenderer(), repo, outDir)

	job := domain.NewOptimizeJob()
	if err := p.Process(context.Background(), job, samplePDF(t)); err != nil {
		t.Fatalf("Process: %v", err)
	}

	saved, err := repo.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("job not saved: %v", err)
	}
	if saved.Status != domain.StatusCompleted {
		t.Errorf("status = %q, want completed", saved.Status)
	}
	outPath, _ := saved.Metadata["output_path"].(string)
	if outPath == "" {
		t.Fatal("metadata missing output_path")
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("artifact not on disk: %v", err)
	}
}

func TestProcessMarksJobFailed(t *testing.T) {
	repo := newMemRepo()
	p := NewProcessor(&echoOptimizer{err: errors.New("service unavailable")}, pdfdoc.NewRenderer(), repo, t.TempDir())

	job := domain.NewOptimizeJob()
	if err := p.Process(context.Background(), job, samplePDF(t)); err == nil {
		t.Fatal("want error from failing optimizer")
	}

	saved, err := repo.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("job not saved: %v", err)
	}
	if saved.Status != domain.StatusFailed {
		t.Errorf("status = %q, want failed", saved.Status)
	}
	if !strings.Contains(saved.Error, "service unavailable") {
		t.Errorf("job error = %q", saved.Error)
	}
}
