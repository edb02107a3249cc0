// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halunder/corpus/internal/pipeline"
)

func TestTextCleaner_ShortInputBypassesService(t *testing.T) {
	svc := &stubService{enabled: true, reply: "should not be used"}
	cleaner := &pipeline.TextCleaner{Service: svc, Logger: testLogger()}

	out := cleaner.Clean(context.Background(), "  Moin!  ")

	assert.Equal(t, "  Moin!  ", out, "short input must pass through verbatim")
	assert.Zero(t, svc.calls)
}

func TestTextCleaner_UsesServiceWhenAvailable(t *testing.T) {
	svc := &stubService{enabled: true, reply: "  Deät wiar en smok Dai.  \n"}
	cleaner := &pipeline.TextCleaner{Service: svc, Logger: testLogger()}

	out := cleaner.Clean(context.Background(), "Deat wiar en smok Dai.")

	assert.Equal(t, "Deät wiar en smok Dai.", out)
	assert.Equal(t, 1, svc.calls)
	assert.InDelta(t, 0.1, svc.lastOpts.Temperature, 1e-9)
}

func TestTextCleaner_FallsBackOnServiceError(t *testing.T) {
	svc := &stubService{enabled: true, err: errors.New("boom")}
	cleaner := &pipeline.TextCleaner{Service: svc, Logger: testLogger()}

	out := cleaner.Clean(context.Background(), "Deät  wiar ,,en''  smok Dai.")

	assert.Equal(t, `Deät wiar "en" smok Dai.`, out)
}

func TestFallbackClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace runs",
			input: "Deät   wiar\n\ten  Dai.",
			want:  "Deät wiar en Dai.",
		},
		{
			name:  "repairs low-nine and double-apostrophe quotes",
			input: `Hi sooi: ,,Moin'' tu mi.`,
			want:  `Hi sooi: "Moin" tu mi.`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  Oaber wat nü?  ",
			want:  "Oaber wat nü?",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pipeline.FallbackClean(tc.input))
		})
	}
}

func TestFallbackClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Deät   wiar ,,en''  smok Dai.",
		"  schon sauber  ",
		"",
	}

	for _, input := range inputs {
		once := pipeline.FallbackClean(input)
		assert.Equal(t, once, pipeline.FallbackClean(once))
	}
}
