package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"

	"resume-optimizer/internal/adapter/repository"
	"resume-optimizer/internal/domain"
	"resume-optimizer/internal/usecase"
	"resume-optimizer/pkg/ai"
	"resume-optimizer/pkg/pdfdoc"
)

// Smoke run of the full pipeline against a mock generation endpoint. Usage:
//
//	test_processor [input.pdf]
//
// Without an argument a small sample resume PDF is fabricated first.

func startMockGemini() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]interface{}
		_ = json.Unmarshal(body, &req)

		optimized := "Jane Doe\njane@example.com\n\nSummary\nSeasoned engineer delivering measurable impact.\n\nExperience\nLed migration cutting costs by 40%.\n\nSkills\nGo, Postgres, Kubernetes"
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": optimized}},
				}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func samplePDF() []byte {
	text := "Jane Doe\njane@example.com\n\nSummary\nEngineer with ten years of backend work.\n\nExperience\nBuilt data pipelines at Acme.\n\nSkills\nGo, SQL"
	b, err := pdfdoc.WriteTextDocument(612, 792, text)
	if err != nil {
		log.Fatalf("sample pdf: %v", err)
	}
	return b
}

func main() {
	ctx := context.Background()

	var pdfBytes []byte
	if len(os.Args) > 1 {
		b, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("read input: %v", err)
		}
		pdfBytes = b
	} else {
		pdfBytes = samplePDF()
	}

	mock := startMockGemini()
	defer mock.Close()

	aiClient := ai.NewClient(ai.Config{APIKey: "test-key", Endpoint: mock.URL})
	processor := usecase.NewProcessor(aiClient, pdfdoc.NewRenderer(), repository.NewJobsRepo(nil), "resume-data/optimized")

	job := domain.NewOptimizeJob()
	if err := processor.Process(ctx, job, pdfBytes); err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	fmt.Printf("job %s %s\n", job.ID, job.Status)
	if p, ok := job.Metadata["output_path"].(string); ok {
		fmt.Printf("wrote %s\n", p)
	}
}
