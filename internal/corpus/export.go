// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/halunder/corpus/internal/platform/apperr"
)

// # CSV Export

// exportHeader lists the CSV columns of the parallel-corpus export.
var exportHeader = []string{
	"id",
	"position",
	"halunder_text",
	"german_text",
	"match_confidence",
	"linguistic_notes",
	"is_idiom",
	"created_at",
}

// ExportFilename returns the timestamped download name for an export started
// at the given time.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("halunder_parallel_corpus_%s.csv", now.Format("20060102_150405"))
}

// WriteSentenceCSV renders sentence pairs as CSV rows. The caller fetches the
// pairs first and is responsible for the BOM and HTTP headers, so a failed
// lookup never corrupts a half-started download.
func WriteSentenceCSV(pairs []*SentencePair, output io.Writer) error {
	writer := csv.NewWriter(output)
	if err := writer.Write(exportHeader); err != nil {
		return apperr.Internal(err)
	}

	for _, pair := range pairs {
		confidence := ""
		if pair.MatchConfidence != nil {
			confidence = strconv.FormatFloat(*pair.MatchConfidence, 'f', -1, 64)
		}

		row := []string{
			pair.ID,
			strconv.Itoa(pair.Position),
			stringValue(pair.HalunderText),
			stringValue(pair.GermanText),
			confidence,
			pair.LinguisticNotes,
			strconv.FormatBool(pair.IsIdiom),
			pair.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return apperr.Internal(err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
