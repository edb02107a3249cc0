// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package corpus_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halunder/corpus/internal/corpus"
	"github.com/halunder/corpus/internal/pipeline"
	"github.com/halunder/corpus/pkg/pointer"
)

func TestWriteSentenceCSV(t *testing.T) {
	pairs := []*corpus.SentencePair{{
		ID:              "0198c5b6-0000-7000-8000-000000000001",
		TextID:          "0198c5b6-0000-7000-8000-000000000002",
		Position:        0,
		HalunderText:    pointer.To("Deät wiar en Dai."),
		GermanText:      pointer.To("Das war ein Tag."),
		MatchConfidence: pointer.To(0.95),
		LinguisticNotes: "Inhalt",
	}}

	var buffer bytes.Buffer
	require.NoError(t, corpus.WriteSentenceCSV(pairs, &buffer))

	lines := bytes.Split(bytes.TrimSpace(buffer.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "halunder_text,german_text")
	assert.Contains(t, string(lines[1]), "Deät wiar en Dai.")
	assert.Contains(t, string(lines[1]), "0.95")
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "halunder_parallel_corpus_20260831_140509.csv", corpus.ExportFilename(now))
}

// Compile-time check that the processor's stages accept the scripted stub.
var _ pipeline.Completer = (*scriptedService)(nil)
