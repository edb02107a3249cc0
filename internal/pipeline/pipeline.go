// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

// Package pipeline implements the text-understanding stages a submission
// passes through: OCR cleanup, language classification, sentence segmentation
// and sentence alignment.
//
// # Degradation
//
// Each stage first tries the external understanding service and switches to
// its own deterministic fallback when the call fails, the response cannot be
// parsed, or no service is configured. A stage failure never aborts a
// submission and never affects another stage.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/halunder/corpus/internal/llm"
)

// Fragment is one segmented sentence with its position in the source text.
type Fragment struct {
	Position int    `json:"position"`
	Content  string `json:"content"`
}

// Match pairs a Halunder sentence with its German counterpart by index.
type Match struct {
	HalunderIndex int     `json:"halunder_index"`
	GermanIndex   int     `json:"german_index"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
}

// Classification is the detected primary language of a monolingual text.
type Classification struct {
	PrimaryLanguage string  `json:"primary_language"`
	Confidence      float64 `json:"confidence"`
}

// Aid is a single vocabulary hint extracted from the translation-aids block.
type Aid struct {
	HalunderTerm      string `json:"halunder_term"`
	GermanTranslation string `json:"german_translation"`
	Notes             string `json:"notes"`
}

// Completer is the slice of the understanding-service client the stages use.
// *llm.Client satisfies it; tests substitute a scripted stub.
type Completer interface {
	Enabled() bool
	Complete(ctx context.Context, system, user string, opts llm.Options) (string, error)
}

// Processor bundles the pipeline stages behind one constructor so the corpus
// service receives a single dependency.
type Processor struct {
	Cleaner    *TextCleaner
	Classifier *LanguageClassifier
	Segmenter  *SentenceSegmenter
	Aligner    *SentenceAligner
}

// NewProcessor wires all stages to the same understanding service.
func NewProcessor(svc Completer, logger *slog.Logger) *Processor {
	return &Processor{
		Cleaner:    &TextCleaner{Service: svc, Logger: logger},
		Classifier: &LanguageClassifier{Service: svc, Logger: logger},
		Segmenter:  &SentenceSegmenter{Service: svc, Logger: logger},
		Aligner:    &SentenceAligner{Service: svc, Logger: logger},
	}
}

// extractJSON trims prose and code fences around a JSON payload. Understanding
// services occasionally wrap their answer in ```json blocks; the stages parse
// only the bracketed body.
func extractJSON(s, open, close string) (string, bool) {
	start := strings.Index(s, open)
	end := strings.LastIndex(s, close)
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}
