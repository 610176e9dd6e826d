package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-doctor-server/internal/apperrors"
	"ai-doctor-server/internal/config"
)

// chatHandler builds an upstream stub that answers per requested model.
func chatHandler(t *testing.T, replies map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		reply, ok := replies[req.Model]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": reply}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func testClient(serverURL string, fallbacks ...string) *Client {
	return NewClient(config.OpenRouterConfig{
		APIKey:         "test-key",
		BaseURL:        serverURL,
		Model:          "primary",
		FallbackModels: fallbacks,
		TimeoutSeconds: 5,
	})
}

func TestAnalyzePrimaryModelSucceeds(t *testing.T) {
	server := httptest.NewServer(chatHandler(t, map[string]string{
		"primary": validResponse,
	}))
	defer server.Close()

	result, err := testClient(server.URL).Analyze(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.ModelUsed != "primary" {
		t.Errorf("ModelUsed = %s, want primary", result.ModelUsed)
	}
}

func TestAnalyzeFallsBackOnUnparseableResponse(t *testing.T) {
	server := httptest.NewServer(chatHandler(t, map[string]string{
		"primary": "I cannot produce JSON today.",
		"backup":  "```json\n" + validResponse + "\n```",
	}))
	defer server.Close()

	result, err := testClient(server.URL, "backup").Analyze(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.ModelUsed != "backup" {
		t.Errorf("ModelUsed = %s, want backup", result.ModelUsed)
	}
}

func TestAnalyzeFallsBackOnUpstreamError(t *testing.T) {
	server := httptest.NewServer(chatHandler(t, map[string]string{
		// "primary" absent: stub answers 404 for it.
		"backup": validResponse,
	}))
	defer server.Close()

	result, err := testClient(server.URL, "backup").Analyze(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.ModelUsed != "backup" {
		t.Errorf("ModelUsed = %s, want backup", result.ModelUsed)
	}
}

func TestAnalyzeExhaustedChainFails(t *testing.T) {
	server := httptest.NewServer(chatHandler(t, map[string]string{
		"primary": "nope",
		"backup":  "also nope",
	}))
	defer server.Close()

	_, err := testClient(server.URL, "backup").Analyze(context.Background(), sampleInput())
	if !errors.Is(err, apperrors.ErrAnalysisUnavailable) {
		t.Fatalf("Analyze error = %v, want ErrAnalysisUnavailable", err)
	}
}

func TestAnalyzeTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(config.OpenRouterConfig{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		Model:          "primary",
		TimeoutSeconds: 1,
	})
	// Shrink the chain deadline below the stub latency.
	client.timeout = 50 * time.Millisecond

	_, err := client.Analyze(context.Background(), sampleInput())
	if !errors.Is(err, apperrors.ErrAnalysisTimeout) {
		t.Fatalf("Analyze error = %v, want ErrAnalysisTimeout", err)
	}
}

func TestAnalyzeWithoutAPIKey(t *testing.T) {
	client := NewClient(config.OpenRouterConfig{BaseURL: "http://unused", TimeoutSeconds: 1})
	_, err := client.Analyze(context.Background(), sampleInput())
	if !errors.Is(err, apperrors.ErrAnalysisUnavailable) {
		t.Fatalf("Analyze error = %v, want ErrAnalysisUnavailable", err)
	}
}
