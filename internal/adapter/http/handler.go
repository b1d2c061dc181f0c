package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"

	"resume-optimizer/internal/domain"
	"resume-optimizer/internal/model"
	"resume-optimizer/internal/usecase"
	"resume-optimizer/pkg/ai"
	"resume-optimizer/pkg/pdfdoc"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	processor *usecase.Processor
	repo      usecase.JobsRepo
}

func NewHandler(p *usecase.Processor, r usecase.JobsRepo) *Handler {
	return &Handler{processor: p, repo: r}
}

// Optimize runs the pipeline synchronously and streams back the new PDF.
func (h *Handler) Optimize(c *fiber.Ctx) error {
	pdfBytes, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := h.processor.Run(c.UserContext(), pdfBytes)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="optimized_resume.pdf"`)
	return c.Send(res.PDF)
}

// StartJob accepts the upload plus optional metadata, persists a pending job
// and processes it in the background.
func (h *Handler) StartJob(c *fiber.Ctx) error {
	pdfBytes, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	job := domain.NewOptimizeJob()

	if raw := c.FormValue("metadata"); raw != "" {
		var meta map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "metadata is not valid JSON"})
		}
		if err := model.ValidateStartJob(meta); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		for k, v := range meta {
			job.Metadata[k] = v
		}
	}

	// persist initial job (best-effort)
	if h.repo != nil {
		if err := h.repo.Save(context.Background(), job); err != nil {
			slog.Warn("failed to save job", "job_id", job.ID, "error", err)
		}
	}

	// spawn background processing; the upload is already copied out of the
	// request buffers
	go func(j *domain.OptimizeJob, pdf []byte) {
		if err := h.processor.Process(context.Background(), j, pdf); err != nil {
			slog.Error("job failed", "job_id", j.ID, "error", err)
		}
	}(job, pdfBytes)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"jobId": job.ID.String(), "status": "started"})
}

// GetJob returns job status and metadata.
func (h *Handler) GetJob(c *fiber.Ctx) error {
	if h.repo == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "jobs store not configured"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid job id"})
	}

	job, err := h.repo.Get(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.JSON(job)
}

func readUpload(c *fiber.Ctx) (_ []byte, err error) {
	fh, err := c.FormFile("resume")
	if err != nil {
		return nil, errors.New("missing resume file")
	}
	var f multipart.File
	f, err = fh.Open()
	if err != nil {
		return nil, errors.New("unreadable resume file")
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.New("unreadable resume file")
	}
	return b, nil
}

// respondError maps pipeline failures to status codes that distinguish bad
// input from remote-service trouble.
func respondError(c *fiber.Ctx, err error) error {
	var unreadable *pdfdoc.DocumentUnreadableError
	var confErr *ai.ConfigurationError
	var svcErr *ai.ServiceError
	var malErr *ai.MalformedResponseError
	var renderErr *pdfdoc.RenderingError

	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &unreadable):
		status = fiber.StatusUnprocessableEntity
	case errors.As(err, &confErr):
		status = fiber.StatusInternalServerError
	case errors.As(err, &svcErr), errors.As(err, &malErr):
		status = fiber.StatusBadGateway
	case errors.As(err, &renderErr):
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
