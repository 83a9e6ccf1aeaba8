// Unit tests for GeminiProvider.
// Uses httptest.NewServer to mock the Gemini REST API — no real API needed.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func geminiReplyBody(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestGeminiProvider_GenerateContent_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		if r.Header.Get(headerAPIKey) != "test-key" {
			http.Error(w, "missing api key", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReplyBody("Hello from Gemini")) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "gemini-1.5-flash-latest", "test-key")
	resp, err := p.GenerateContent(context.Background(), GenerateRequest{Prompt: "hi"})
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}
	if resp.Text != "Hello from Gemini" {
		t.Errorf("Text = %q; want %q", resp.Text, "Hello from Gemini")
	}
	if resp.StopReason != "STOP" {
		t.Errorf("StopReason = %q; want STOP", resp.StopReason)
	}
}

func TestGeminiProvider_GenerateContent_JoinsParts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"parts": []map[string]any{{"text": "Hello "}, {"text": "world"}},
					},
					"finishReason": "STOP",
				},
			},
		})
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "gemini-1.5-flash-latest", "k")
	resp, err := p.GenerateContent(context.Background(), GenerateRequest{Prompt: "hi"})
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}
	if resp.Text != "Hello world" {
		t.Errorf("Text = %q; want %q", resp.Text, "Hello world")
	}
}

func TestGeminiProvider_GenerateContent_RateLimited_ReturnsStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "gemini-1.5-flash-latest", "k")
	_, err := p.GenerateContent(context.Background(), GenerateRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for 429 response, got nil")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if se.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d; want 429", se.StatusCode)
	}
	if !IsRateLimit(err) {
		t.Error("IsRateLimit(err) = false; want true")
	}
}

func TestGeminiProvider_GenerateContent_ServerError_NotRateLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "gemini-1.5-flash-latest", "k")
	_, err := p.GenerateContent(context.Background(), GenerateRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for 500 response, got nil")
	}
	if IsRateLimit(err) {
		t.Error("IsRateLimit(err) = true for a 500; want false")
	}
}

func TestGeminiProvider_GenerateContent_NoCandidates_ReturnsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "gemini-1.5-flash-latest", "k")
	_, err := p.GenerateContent(context.Background(), GenerateRequest{Prompt: "hi"})
	if err == nil {
		t.Error("expected error for empty candidates, got nil")
	}
}

func TestGeminiProvider_HealthCheck(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "unexpected method", http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{"name":"models/gemini-1.5-flash-latest"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "gemini-1.5-flash-latest", "k")
	if err := p.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}

	down := NewGeminiProvider("http://127.0.0.1:1", "gemini-1.5-flash-latest", "k")
	if err := down.HealthCheck(context.Background()); err == nil {
		t.Error("expected error for unreachable API, got nil")
	}
}

func TestGeminiProvider_ModelInfo(t *testing.T) {
	t.Parallel()

	p := NewGeminiProvider("http://localhost", "gemini-1.5-flash-latest", "k")
	info := p.ModelInfo()
	if info.Provider != "gemini" {
		t.Errorf("Provider = %q; want gemini", info.Provider)
	}
	if info.ID != "gemini-1.5-flash-latest" {
		t.Errorf("ID = %q; want gemini-1.5-flash-latest", info.ID)
	}
}
