package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOptimizeResumeReturnsTrimmedCandidate(t *testing.T) {
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Optimized resume text.\n"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", Endpoint: srv.URL})
	got, err := c.OptimizeResume(context.Background(), "Jane Doe\nExperience\nAcme")
	if err != nil {
		t.Fatalf("OptimizeResume: %v", err)
	}
	if got != "Optimized resume text." {
		t.Errorf("got %q, want trimmed candidate text", got)
	}

	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected request shape: %+v", gotReq)
	}
	prompt := gotReq.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "Jane Doe") {
		t.Errorf("prompt missing resume text: %q", prompt)
	}
	if !strings.Contains(prompt, "ORIGINAL RESUME:") || !strings.Contains(prompt, "OPTIMIZED RESUME:") {
		t.Errorf("prompt missing template markers: %q", prompt)
	}
	if gotReq.GenerationConfig.Temperature != 0.3 {
		t.Errorf("temperature = %v, want 0.3", gotReq.GenerationConfig.Temperature)
	}
	if gotReq.GenerationConfig.MaxOutputTokens != 8192 {
		t.Errorf("maxOutputTokens = %d, want 8192", gotReq.GenerationConfig.MaxOutputTokens)
	}
}

func TestOptimizeResumeMissingAPIKey(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	_, err := c.OptimizeResume(context.Background(), "text")

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want ConfigurationError, got %v", err)
	}
	if cfgErr.Missing != "GOOGLE_API_KEY" {
		t.Errorf("Missing = %q", cfgErr.Missing)
	}
	if hits != 0 {
		t.Errorf("server was called %d times; missing key must fail before any request", hits)
	}
}

func TestOptimizeResumeServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", Endpoint: srv.URL})
	_, err := c.OptimizeResume(context.Background(), "text")

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("want ServiceError, got %v", err)
	}
	if svcErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", svcErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error message should carry the status code: %q", err.Error())
	}
}

func TestOptimizeResumeMalformedResponses(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"candidates":`},
		{"no candidates", `{"candidates":[]}`},
		{"no parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"empty text", `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(Config{APIKey: "test-key", Endpoint: srv.URL})
			_, err := c.OptimizeResume(context.Background(), "text")

			var mErr *MalformedResponseError
			if !errors.As(err, &mErr) {
				t.Fatalf("want MalformedResponseError, got %v", err)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.Endpoint != defaultEndpoint {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.Timeout.Seconds() != 60 {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.Temperature != 0.3 {
		t.Errorf("Temperature = %v", cfg.Temperature)
	}
	if cfg.MaxOutputTokens != 8192 {
		t.Errorf("MaxOutputTokens = %d", cfg.MaxOutputTokens)
	}
}
