// Package llm — Gemini HTTP adapter.
// GeminiProvider calls the Google Generative Language REST API using stdlib
// net/http. Endpoints used:
//   - POST /v1beta/models/{model}:generateContent — non-streaming generation
//   - GET  /v1beta/models/{model}                 — health check (model metadata)
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	mimeJSON          = "application/json"
	headerContentType = "Content-Type"
	headerAPIKey      = "x-goog-api-key"

	geminiAPIVersion = "v1beta"
)

// GeminiProvider implements Provider against the hosted Gemini API.
type GeminiProvider struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewGeminiProvider creates a GeminiProvider with a 60s default timeout.
// The timeout bounds a single generation call; retry behaviour lives in
// ResilientClient, not here.
func NewGeminiProvider(baseURL, model, apiKey string) *GeminiProvider {
	return &GeminiProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ─── internal Gemini JSON types ──────────────────────────────────────────────

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiGenerateRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

// ─── Provider implementation ─────────────────────────────────────────────────

// GenerateContent performs a non-streaming generation call.
// Non-2xx upstream responses surface as *StatusError so callers can detect
// rate limiting without parsing message text.
func (p *GeminiProvider) GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	body, err := json.Marshal(geminiGenerateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: buildGenerationConfig(req),
	})
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/%s/models/%s:generateContent", geminiAPIVersion, model)
	respBody, postErr := p.doPost(ctx, path, body)
	if postErr != nil {
		return nil, postErr
	}
	defer respBody.Close() //nolint:errcheck

	var geminiResp geminiGenerateResponse
	if decodeErr := json.NewDecoder(respBody).Decode(&geminiResp); decodeErr != nil {
		return nil, fmt.Errorf("decode generate response: %w", decodeErr)
	}
	if len(geminiResp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini generate: no candidates in response")
	}

	cand := geminiResp.Candidates[0]
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		text.WriteString(part.Text)
	}
	return &GenerateResponse{
		Text:       text.String(),
		StopReason: cand.FinishReason,
	}, nil
}

// buildGenerationConfig converts request fields into the Gemini config block.
func buildGenerationConfig(req GenerateRequest) *geminiGenerationConfig {
	if req.Temperature == 0 && req.MaxTokens == 0 {
		return nil
	}
	return &geminiGenerationConfig{
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxTokens,
	}
}

// ModelInfo returns static metadata for this provider/model.
func (p *GeminiProvider) ModelInfo() ModelMeta {
	return ModelMeta{
		ID:        p.model,
		Provider:  "gemini",
		Version:   geminiAPIVersion,
		MaxTokens: 8192,
	}
}

// HealthCheck fetches the model metadata — returns nil if the API is reachable
// and the configured model exists.
func (p *GeminiProvider) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/%s/models/%s", p.baseURL, geminiAPIVersion, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("gemini healthcheck: build request: %w", err)
	}
	req.Header.Set(headerAPIKey, p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini healthcheck: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gemini healthcheck: status %d", resp.StatusCode)
	}
	return nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// doPost sends a POST request to baseURL+path and returns the response body.
// Caller is responsible for closing the returned ReadCloser.
func (p *GeminiProvider) doPost(ctx context.Context, path string, body []byte) (io.ReadCloser, error) {
	url := p.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini post %s: build request: %w", path, err)
	}
	req.Header.Set(headerContentType, mimeJSON)
	req.Header.Set(headerAPIKey, p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini post %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close() //nolint:errcheck
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Body:       string(buf),
		}
	}
	return resp.Body, nil
}
