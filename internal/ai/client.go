package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"ai-doctor-server/internal/apperrors"
	"ai-doctor-server/internal/config"
)

const (
	maxTokens   = 2000
	temperature = 0.3 // lower temperature for more consistent medical advice
)

// Client calls the OpenRouter chat-completions API and walks the fallback
// model chain when a model fails or returns an unparseable response.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	fallbacks  []string
	timeout    time.Duration
}

// NewClient creates a Client from the OpenRouter configuration.
func NewClient(cfg config.OpenRouterConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		fallbacks:  cfg.FallbackModels,
		timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// Analyze sends the consultation context to the primary model and, on
// transport or parse failure, retries down the fallback chain. The whole chain
// shares one deadline; exceeding it fails with ErrAnalysisTimeout, exhausting
// the chain fails with ErrAnalysisUnavailable.
func (c *Client) Analyze(ctx context.Context, in *AnalysisInput) (*AnalysisResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: upstream API key not configured", apperrors.ErrAnalysisUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := BuildPrompt(in)

	var lastErr error
	for _, model := range append([]string{c.model}, c.fallbacks...) {
		raw, err := c.complete(ctx, model, systemPrompt, prompt, maxTokens, temperature)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", apperrors.ErrAnalysisTimeout, ctx.Err())
			}
			log.Printf("analysis model %s failed: %v", model, err)
			lastErr = err
			continue
		}

		result, err := ParseResponse(raw, model)
		if err != nil {
			log.Printf("analysis model %s returned unparseable response: %v", model, err)
			lastErr = err
			continue
		}
		return result, nil
	}

	return nil, fmt.Errorf("%w: all models failed, last error: %v", apperrors.ErrAnalysisUnavailable, lastErr)
}

// complete performs one chat-completions call and returns the message content.
func (c *Client) complete(ctx context.Context, model, system, prompt string, tokens int, temp float64) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   tokens,
		Temperature: temp,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call upstream: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read upstream response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, body)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode upstream response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned from upstream")
	}

	return parsed.Choices[0].Message.Content, nil
}
