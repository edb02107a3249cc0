// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package pipeline

import (
	"regexp"
	"strings"
)

// Translation aids arrive as hand-typed glossary lines ("Oaber - Aber").
// A deterministic split is reliable here, so no remote call is made.

var aidSeparator = regexp.MustCompile(`\s*[-:–]\s*`)

// ExtractAids parses one aid per line. A line must contain "-" or ":" and
// split into exactly two parts around the first separator; everything else is
// skipped.
func ExtractAids(text string) []Aid {
	if text == "" {
		return []Aid{}
	}

	aids := []Aid{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.ContainsAny(line, "-:") {
			continue
		}
		parts := aidSeparator.Split(line, 2)
		if len(parts) != 2 {
			continue
		}
		aids = append(aids, Aid{
			HalunderTerm:      strings.TrimSpace(parts[0]),
			GermanTranslation: strings.TrimSpace(parts[1]),
			Notes:             "Automatisch extrahiert",
		})
	}
	return aids
}

// ExtractIdioms is reserved for a dedicated idiom model. It currently finds
// nothing, so sentence pairs keep is_idiom false.
func ExtractIdioms(string) []string {
	return []string{}
}
