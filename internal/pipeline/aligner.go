// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/halunder/corpus/internal/llm"
)

// alignSampleSize caps how many sentences of each side go into the matching
// prompt. Long texts would blow the token budget; the assembler pairs the
// remainder positionally anyway.
const alignSampleSize = 5

// defaultMatchConfidence is assigned when the understanding service omits a
// confidence, and by the 1:1 fallback.
const defaultMatchConfidence = 0.8

// SentenceAligner pairs Halunder sentences with their German translations.
type SentenceAligner struct {
	Service Completer
	Logger  *slog.Logger
}

// Align returns index pairs into the two sentence slices. Matches are
// returned as claimed by the service, including indices that may be out of
// bounds for the full slices; callers must bounds-check before use.
func (a *SentenceAligner) Align(ctx context.Context, halunder, german []string) []Match {
	if a.Service.Enabled() {
		matches, err := a.alignRemote(ctx, halunder, german)
		if err == nil {
			return matches
		}
		a.Logger.Warn("sentence alignment fell back", "error", err)
	}

	return FallbackAlign(halunder, german)
}

func (a *SentenceAligner) alignRemote(ctx context.Context, halunder, german []string) ([]Match, error) {
	halunderJSON, err := json.Marshal(sample(halunder))
	if err != nil {
		return nil, err
	}
	germanJSON, err := json.Marshal(sample(german))
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Matche Halunder-Sätze mit deutschen Übersetzungen.

Halunder: %s
Deutsch: %s

JSON-Array:
[
    {
        "halunder_index": 0,
        "german_index": 0,
        "confidence": 0.95,
        "reasoning": "Begründung"
    }
]`, halunderJSON, germanJSON)

	result, err := a.Service.Complete(ctx, "Du ordnest Sätze einer Übersetzung zu.", prompt, llm.Options{
		Temperature: 0.3,
		MaxTokens:   600,
	})
	if err != nil {
		return nil, err
	}

	body, ok := extractJSON(result, "[", "]")
	if !ok {
		return nil, fmt.Errorf("aligner: no JSON array in response")
	}

	var parsed []struct {
		HalunderIndex int      `json:"halunder_index"`
		GermanIndex   int      `json:"german_index"`
		Confidence    *float64 `json:"confidence"`
		Reasoning     string   `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, fmt.Errorf("aligner: %w", err)
	}

	matches := make([]Match, 0, len(parsed))
	for _, m := range parsed {
		confidence := defaultMatchConfidence
		if m.Confidence != nil {
			confidence = *m.Confidence
		}
		matches = append(matches, Match{
			HalunderIndex: m.HalunderIndex,
			GermanIndex:   m.GermanIndex,
			Confidence:    confidence,
			Reasoning:     m.Reasoning,
		})
	}
	return matches, nil
}

func sample(sentences []string) []string {
	if len(sentences) > alignSampleSize {
		return sentences[:alignSampleSize]
	}
	return sentences
}

// FallbackAlign pairs sentences 1:1 by position up to the shorter side,
// with a fixed confidence of 0.8.
func FallbackAlign(halunder, german []string) []Match {
	n := len(halunder)
	if len(german) < n {
		n = len(german)
	}

	matches := make([]Match, 0, n)
	for i := 0; i < n; i++ {
		matches = append(matches, Match{
			HalunderIndex: i,
			GermanIndex:   i,
			Confidence:    defaultMatchConfidence,
			Reasoning:     fmt.Sprintf("Automatisches 1:1 Matching Position %d", i+1),
		})
	}
	return matches
}
