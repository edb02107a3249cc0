// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

// Package textnorm provides Unicode normalization helpers for OCR'd corpus text.
//
// # Usage
//
// Scanned Halunder sources arrive with decomposed umlauts and stray combining
// marks depending on the OCR engine. Everything stored in the corpus is first
// normalized here so that "deät" compares equal regardless of how the scanner
// encoded the ä.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NFC returns s in Unicode Normalization Form C (composed).
//
// Combining sequences such as "a" + U+0308 become the single rune "ä".
// Already-composed input passes through unchanged.
func NFC(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// FoldForMatching lowercases and NFC-normalizes s for lexicon lookups.
//
// It is used by the language classifier fallback, where marker words must
// match regardless of OCR casing or encoding form.
func FoldForMatching(s string) string {
	return strings.ToLower(NFC(s))
}
