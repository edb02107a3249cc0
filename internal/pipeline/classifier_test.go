// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halunder/corpus/internal/pipeline"
	"github.com/halunder/corpus/internal/platform/constants"
)

func TestLanguageClassifier_ParsesServiceResponse(t *testing.T) {
	svc := &stubService{enabled: true, reply: `{"primary_language": "german", "confidence": 0.95}`}
	classifier := &pipeline.LanguageClassifier{Service: svc, Logger: testLogger()}

	got := classifier.Classify(context.Background(), "Das ist ein deutscher Satz.")

	assert.Equal(t, constants.LanguageGerman, got.PrimaryLanguage)
	assert.InDelta(t, 0.95, got.Confidence, 1e-9)
}

func TestLanguageClassifier_AcceptsFencedJSON(t *testing.T) {
	svc := &stubService{enabled: true, reply: "```json\n{\"primary_language\": \"halunder\", \"confidence\": 0.9}\n```"}
	classifier := &pipeline.LanguageClassifier{Service: svc, Logger: testLogger()}

	got := classifier.Classify(context.Background(), "Deät wiar...")

	assert.Equal(t, constants.LanguageHalunder, got.PrimaryLanguage)
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)
}

func TestLanguageClassifier_PartialResponseGetsDefaults(t *testing.T) {
	svc := &stubService{enabled: true, reply: `{"confidence": 0.6}`}
	classifier := &pipeline.LanguageClassifier{Service: svc, Logger: testLogger()}

	got := classifier.Classify(context.Background(), "wat uun dear")

	assert.Equal(t, constants.LanguageHalunder, got.PrimaryLanguage)
	assert.InDelta(t, 0.6, got.Confidence, 1e-9)
}

func TestLanguageClassifier_FallsBackOnGarbage(t *testing.T) {
	svc := &stubService{enabled: true, err: errors.New("timeout")}
	classifier := &pipeline.LanguageClassifier{Service: svc, Logger: testLogger()}

	got := classifier.Classify(context.Background(), "deät wat uun fan Helgolun")

	assert.Equal(t, constants.LanguageHalunder, got.PrimaryLanguage)
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)
}

func TestFallbackClassify(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantLanguage   string
		wantConfidence float64
	}{
		{
			name:           "no markers means german",
			text:           "Das ist ein ganz normaler deutscher Satz.",
			wantLanguage:   constants.LanguageGerman,
			wantConfidence: 0.7,
		},
		{
			name:           "single marker means halunder at low confidence",
			text:           "Hi keem oaber long tu leët.",
			wantLanguage:   constants.LanguageHalunder,
			wantConfidence: 0.7,
		},
		{
			name:           "three markers raise confidence",
			text:           "Deät wiar wat uun e Hemel.",
			wantLanguage:   constants.LanguageHalunder,
			wantConfidence: 0.9,
		},
		{
			name:           "markers match case-insensitively",
			text:           "DEÄT DJA UUN",
			wantLanguage:   constants.LanguageHalunder,
			wantConfidence: 0.9,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pipeline.FallbackClassify(tc.text)
			assert.Equal(t, tc.wantLanguage, got.PrimaryLanguage)
			assert.InDelta(t, tc.wantConfidence, got.Confidence, 1e-9)
		})
	}
}
