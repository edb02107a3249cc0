// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/halunder/corpus/internal/llm"
	"github.com/halunder/corpus/pkg/textnorm"
)

// minCleanLength is the shortest input worth a remote cleanup call. Scanned
// page fragments below this are returned untouched.
const minCleanLength = 10

var whitespaceRun = regexp.MustCompile(`\s+`)

// TextCleaner removes OCR artifacts from scanned text while preserving the
// Halunder dialect spelling.
type TextCleaner struct {
	Service Completer
	Logger  *slog.Logger
}

// Clean returns the cleaned text. Inputs shorter than ten characters after
// trimming are passed through unchanged without a remote call.
func (c *TextCleaner) Clean(ctx context.Context, text string) string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minCleanLength {
		return text
	}

	if c.Service.Enabled() {
		cleaned, err := c.cleanRemote(ctx, text)
		if err == nil {
			return cleaned
		}
		c.Logger.Warn("ocr cleanup fell back", "error", err)
	}

	return FallbackClean(text)
}

func (c *TextCleaner) cleanRemote(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(`Korrigiere OCR-Fehler in diesem Text. Behalte Halunder-Dialekt bei.

Text: %s

Antworte NUR mit dem korrigierten Text:`, text)

	result, err := c.Service.Complete(ctx, "Du korrigierst OCR-Fehler in historischen Texten.", prompt, llm.Options{
		Temperature: 0.1,
		MaxTokens:   utf8.RuneCountInString(text) + 100,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// FallbackClean is the deterministic cleanup applied when the understanding
// service is unavailable: NFC normalization, whitespace-run collapse and
// typographic quote repair. It is idempotent.
func FallbackClean(text string) string {
	text = textnorm.NFC(text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, ",,", `"`)
	text = strings.ReplaceAll(text, "''", `"`)
	return strings.TrimSpace(text)
}
