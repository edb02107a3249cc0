// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

// Package llm provides the client for the external text-understanding service.
//
// # Degradation Contract
//
// Every pipeline stage treats a failure from this package — connectivity,
// timeout, non-2xx, empty or malformed payload — identically: it switches to
// its deterministic fallback for that stage only. Errors from here are
// therefore never surfaced to API clients.
package llm

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrUnavailable is returned when no understanding service is configured.
var ErrUnavailable = errors.New("llm: understanding service unavailable")

// DefaultTimeout bounds a single completion call when no explicit client
// timeout is configured.
const DefaultTimeout = 30 * time.Second

// Options bounds a single generation.
type Options struct {
	// Temperature controls sampling randomness. The cleaning and
	// classification stages run near-deterministic (0.1).
	Temperature float64
	// MaxTokens caps the generated output length.
	MaxTokens int
}

// Cache stores completions keyed by the full request fingerprint.
// A nil cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client

	// Limiter throttles outbound calls so a burst of submissions cannot
	// exhaust the remote quota. Nil means unthrottled.
	Limiter *rate.Limiter

	// ResponseCache short-circuits repeated identical requests.
	ResponseCache Cache
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Enabled reports whether the client can reach a configured endpoint.
// A disabled client fails every call with [ErrUnavailable], which pushes all
// pipeline stages onto their fallbacks.
func (c *Client) Enabled() bool {
	return c != nil && c.BaseURL != "" && c.Model != ""
}

// Complete sends a system+user prompt pair and returns the raw completion text.
func (c *Client) Complete(ctx context.Context, system, user string, opts Options) (string, error) {
	if !c.Enabled() {
		return "", ErrUnavailable
	}

	cacheKey := c.fingerprint(system, user, opts)
	if c.ResponseCache != nil {
		if cached, ok := c.ResponseCache.Get(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("llm: rate limiter: %w", err)
		}
	}

	messages := []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}

	payload, err := c.send(ctx, messages, opts)
	if err != nil {
		return "", err
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}

	content := payload.Choices[0].Message.Content
	if c.ResponseCache != nil {
		c.ResponseCache.Set(ctx, cacheKey, content)
	}

	return content, nil
}

func (c *Client) send(ctx context.Context, messages []chatMessage, opts Options) (*chatResponse, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("llm: HTTP %d", resp.StatusCode)
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("llm error: %s", payload.Error.Message)
	}

	return &payload, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}

// fingerprint derives a stable cache key for a request. Model and generation
// bounds are part of the key so a config change never serves stale output.
func (c *Client) fingerprint(system, user string, opts Options) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%.3f\x00%d", c.Model, system, user, opts.Temperature, opts.MaxTokens)
	return hex.EncodeToString(h.Sum(nil))
}
