// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/halunder/corpus/internal/llm"
	"github.com/halunder/corpus/internal/platform/constants"
	"github.com/halunder/corpus/pkg/textnorm"
)

// classifyPrefixRunes bounds how much text the classifier sends. The first
// few sentences decide the language; the rest only costs tokens.
const classifyPrefixRunes = 300

// halunderMarkers are function words and particles that occur in Halunder but
// not in standard German. The fallback classifier counts them.
var halunderMarkers = []string{
	"deät", "dja", "uun", "fan", "med", "wat",
	"soo", "oaber", "djül", "küm", "dear", "hid",
}

// LanguageClassifier decides whether a monolingual submission is Halunder or
// German. It only runs when exactly one text side is present; parallel
// submissions carry their language assignment implicitly.
type LanguageClassifier struct {
	Service Completer
	Logger  *slog.Logger
}

// Classify returns the detected primary language with a confidence score.
func (c *LanguageClassifier) Classify(ctx context.Context, text string) Classification {
	if c.Service.Enabled() {
		result, err := c.classifyRemote(ctx, text)
		if err == nil {
			return result
		}
		c.Logger.Warn("language classification fell back", "error", err)
	}

	return FallbackClassify(text)
}

func (c *LanguageClassifier) classifyRemote(ctx context.Context, text string) (Classification, error) {
	runes := []rune(text)
	if len(runes) > classifyPrefixRunes {
		runes = runes[:classifyPrefixRunes]
	}

	prompt := fmt.Sprintf(`Analysiere schnell: Ist das Halunder oder Deutsch?
Halunder-Kennzeichen: deät, dja, uun, fan, med, wat, Djül, küm

Text: %s

JSON-Antwort:
{"primary_language": "halunder", "confidence": 0.9}`, string(runes))

	result, err := c.Service.Complete(ctx, "Du erkennst die Sprache kurzer Textausschnitte.", prompt, llm.Options{
		Temperature: 0.1,
		MaxTokens:   50,
	})
	if err != nil {
		return Classification{}, err
	}

	body, ok := extractJSON(result, "{", "}")
	if !ok {
		return Classification{}, fmt.Errorf("classifier: no JSON object in response")
	}

	var parsed struct {
		PrimaryLanguage *string  `json:"primary_language"`
		Confidence      *float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return Classification{}, fmt.Errorf("classifier: %w", err)
	}

	// Partial answers get the historical defaults rather than a retry.
	out := Classification{PrimaryLanguage: constants.LanguageHalunder, Confidence: 0.8}
	if parsed.PrimaryLanguage != nil && *parsed.PrimaryLanguage != "" {
		out.PrimaryLanguage = *parsed.PrimaryLanguage
	}
	if parsed.Confidence != nil {
		out.Confidence = *parsed.Confidence
	}
	return out, nil
}

// FallbackClassify counts Halunder marker words in the lowercased text.
// Any hit means Halunder; more than two hits raise the confidence.
func FallbackClassify(text string) Classification {
	folded := textnorm.FoldForMatching(text)

	count := 0
	for _, marker := range halunderMarkers {
		if strings.Contains(folded, marker) {
			count++
		}
	}

	out := Classification{PrimaryLanguage: constants.LanguageGerman, Confidence: 0.7}
	if count > 0 {
		out.PrimaryLanguage = constants.LanguageHalunder
	}
	if count > 2 {
		out.Confidence = 0.9
	}
	return out
}
