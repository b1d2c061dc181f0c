package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	httpadapter "resume-optimizer/internal/adapter/http"
	repo "resume-optimizer/internal/adapter/repository"
	"resume-optimizer/internal/infrastructure/migration"
	"resume-optimizer/internal/usecase"
	"resume-optimizer/pkg/ai"
	infra "resume-optimizer/pkg/infrastructure"
	"resume-optimizer/pkg/pdfdoc"

	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx := context.Background()

	// infra setup
	jobsPool, err := infra.NewJobsPool(ctx)
	if err != nil {
		slog.Warn("jobs DB not available", "error", err)
	}
	if jobsPool != nil {
		if err := migration.RunMigrations(ctx, jobsPool); err != nil {
			slog.Error("migrations failed", "error", err)
		}
	}

	aiClient := ai.NewClient(ai.ConfigFromEnv())
	jobsRepo := repo.NewJobsRepo(jobsPool)
	processor := usecase.NewProcessor(aiClient, pdfdoc.NewRenderer(), jobsRepo, "resume-data/optimized")

	app := fiber.New(fiber.Config{BodyLimit: 20 << 20})

	h := httpadapter.NewHandler(processor, jobsRepo)
	app.Post("/optimize", h.Optimize)
	app.Post("/jobs/start", h.StartJob)
	app.Get("/jobs/:id", h.GetJob)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
