// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTrip func(*http.Request) (*http.Response, error)

func (f roundTrip) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

type mapCache struct {
	entries map[string]string
	sets    int
}

func (m *mapCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := m.entries[key]
	return v, ok
}

func (m *mapCache) Set(_ context.Context, key, value string) {
	m.sets++
	m.entries[key] = value
}

func TestClient_Enabled(t *testing.T) {
	assert.False(t, (*Client)(nil).Enabled())
	assert.False(t, (&Client{BaseURL: "http://llm.local/v1/chat/completions"}).Enabled())
	assert.True(t, (&Client{BaseURL: "http://llm.local/v1/chat/completions", Model: "gpt-4o-mini"}).Enabled())
}

func TestClient_Complete(t *testing.T) {
	var captured chatRequest
	client := &Client{
		BaseURL: "http://llm.local/v1/chat/completions",
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		HTTPClient: &http.Client{Transport: roundTrip(func(r *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			return jsonResponse(http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"Deät wiar en Dai."}}]}`), nil
		})},
	}

	out, err := client.Complete(context.Background(), "system prompt", "user prompt", Options{Temperature: 0.1, MaxTokens: 200})

	require.NoError(t, err)
	assert.Equal(t, "Deät wiar en Dai.", out)
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user prompt", captured.Messages[1].Content)
	assert.InDelta(t, 0.1, captured.Temperature, 1e-9)
	assert.Equal(t, 200, captured.MaxTokens)
}

func TestClient_CompleteDisabled(t *testing.T) {
	_, err := (&Client{}).Complete(context.Background(), "s", "u", Options{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_CompleteHTTPError(t *testing.T) {
	client := &Client{
		BaseURL: "http://llm.local/v1/chat/completions",
		Model:   "gpt-4o-mini",
		HTTPClient: &http.Client{Transport: roundTrip(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadGateway, `{}`), nil
		})},
	}

	_, err := client.Complete(context.Background(), "s", "u", Options{})
	assert.ErrorContains(t, err, "502")
}

func TestClient_CompleteEmptyChoices(t *testing.T) {
	client := &Client{
		BaseURL: "http://llm.local/v1/chat/completions",
		Model:   "gpt-4o-mini",
		HTTPClient: &http.Client{Transport: roundTrip(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"choices":[]}`), nil
		})},
	}

	_, err := client.Complete(context.Background(), "s", "u", Options{})
	assert.ErrorContains(t, err, "empty response")
}

func TestClient_CompleteTransportError(t *testing.T) {
	client := &Client{
		BaseURL: "http://llm.local/v1/chat/completions",
		Model:   "gpt-4o-mini",
		HTTPClient: &http.Client{Transport: roundTrip(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})},
	}

	_, err := client.Complete(context.Background(), "s", "u", Options{})
	assert.Error(t, err)
}

func TestClient_CompleteUsesCache(t *testing.T) {
	calls := 0
	cache := &mapCache{entries: map[string]string{}}
	client := &Client{
		BaseURL:       "http://llm.local/v1/chat/completions",
		Model:         "gpt-4o-mini",
		ResponseCache: cache,
		HTTPClient: &http.Client{Transport: roundTrip(func(*http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"antwort"}}]}`), nil
		})},
	}

	first, err := client.Complete(context.Background(), "s", "u", Options{Temperature: 0.3})
	require.NoError(t, err)
	second, err := client.Complete(context.Background(), "s", "u", Options{Temperature: 0.3})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second call must be served from cache")
	assert.Equal(t, 1, cache.sets)

	// Different generation bounds miss the cache.
	_, err = client.Complete(context.Background(), "s", "u", Options{Temperature: 0.9})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
