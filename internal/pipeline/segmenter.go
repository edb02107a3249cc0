// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/halunder/corpus/internal/llm"
)

// minFragmentRunes drops stray OCR crumbs ("a.", "I") that the boundary
// splitter produces; anything this short is not a sentence.
const minFragmentRunes = 2

// SentenceSegmenter splits a cleaned text into positioned sentence fragments.
type SentenceSegmenter struct {
	Service Completer
	Logger  *slog.Logger
}

// Segment returns the fragments of text, annotated with positions.
// Positions from the understanding service are taken as-is; the fallback
// numbers fragments densely from zero. Empty input yields an empty slice.
func (s *SentenceSegmenter) Segment(ctx context.Context, text, language string) []Fragment {
	if strings.TrimSpace(text) == "" {
		return []Fragment{}
	}

	if s.Service.Enabled() {
		fragments, err := s.segmentRemote(ctx, text, language)
		if err == nil {
			return fragments
		}
		s.Logger.Warn("sentence segmentation fell back", "language", language, "error", err)
	}

	return FallbackSegment(text)
}

func (s *SentenceSegmenter) segmentRemote(ctx context.Context, text, language string) ([]Fragment, error) {
	prompt := fmt.Sprintf(`Extrahiere Sätze aus diesem %s-Text.

Text: %s

JSON-Array:
[
    {"position": 0, "content": "Erster Satz."},
    {"position": 1, "content": "Zweiter Satz."}
]`, language, text)

	result, err := s.Service.Complete(ctx, "Du zerlegst Texte in einzelne Sätze.", prompt, llm.Options{
		Temperature: 0.3,
		MaxTokens:   800,
	})
	if err != nil {
		return nil, err
	}

	body, ok := extractJSON(result, "[", "]")
	if !ok {
		return nil, fmt.Errorf("segmenter: no JSON array in response")
	}

	var fragments []Fragment
	if err := json.Unmarshal([]byte(body), &fragments); err != nil {
		return nil, fmt.Errorf("segmenter: %w", err)
	}
	return fragments, nil
}

// FallbackSegment splits text after sentence-final punctuation followed by
// whitespace. Fragments of two runes or fewer are dropped; surviving
// fragments are renumbered densely.
func FallbackSegment(text string) []Fragment {
	fragments := []Fragment{}
	for _, part := range splitAfterBoundary(strings.TrimSpace(text)) {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) <= minFragmentRunes {
			continue
		}
		fragments = append(fragments, Fragment{
			Position: len(fragments),
			Content:  part,
		})
	}
	return fragments
}

// splitAfterBoundary cuts after ".", "!" or "?" when whitespace follows, so
// abbreviated forms at end of input and mid-token punctuation stay intact.
func splitAfterBoundary(text string) []string {
	var parts []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if !isBoundaryRune(runes[i]) || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		parts = append(parts, current.String())
		current.Reset()
		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func isBoundaryRune(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
