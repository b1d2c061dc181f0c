package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

// Config holds everything the optimizer client needs. It is constructed once
// at process start and passed in explicitly; the client reads no globals.
type Config struct {
	APIKey          string
	Endpoint        string
	Timeout         time.Duration
	Temperature     float64
	MaxOutputTokens int
}

// ConfigFromEnv builds a Config from the process environment. A missing API
// key is not an error here; it surfaces as a ConfigurationError on first use.
func ConfigFromEnv() Config {
	cfg := Config{
		APIKey:   os.Getenv("GOOGLE_API_KEY"),
		Endpoint: os.Getenv("GEMINI_API_URL"),
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	if c.Temperature == 0 {
		c.Temperature = 0.3
	}
	if c.MaxOutputTokens == 0 {
		c.MaxOutputTokens = 8192
	}
	return c
}

// Client calls the generative-language service to rewrite resume text.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// OptimizeResume sends the full resume text in one fixed-template prompt and
// returns the first candidate's text, trimmed. A single attempt, bounded by
// the configured timeout; failures propagate to the caller unretried.
func (c *Client) OptimizeResume(ctx context.Context, text string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", &ConfigurationError{Missing: "GOOGLE_API_KEY"}
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(text)}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.Endpoint+"?key="+url.QueryEscape(c.cfg.APIKey), bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{StatusCode: resp.StatusCode, Body: string(respBytes)}
	}

	var gr generateResponse
	if err := json.Unmarshal(respBytes, &gr); err != nil {
		return "", &MalformedResponseError{Reason: "invalid JSON body"}
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", &MalformedResponseError{Reason: "no candidate text in response"}
	}
	out := gr.Candidates[0].Content.Parts[0].Text
	if out == "" {
		return "", &MalformedResponseError{Reason: "empty candidate text"}
	}
	return strings.TrimSpace(out), nil
}
