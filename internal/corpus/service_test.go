// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package corpus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halunder/corpus/internal/corpus"
	"github.com/halunder/corpus/internal/llm"
	"github.com/halunder/corpus/internal/observe"
	"github.com/halunder/corpus/internal/pipeline"
	"github.com/halunder/corpus/internal/platform/apperr"
	"github.com/halunder/corpus/internal/platform/constants"
)

// # Test Doubles

// scriptedService answers prompts whose user message contains a known
// marker. Unscripted prompts fail, which pushes that stage onto its fallback.
type scriptedService struct {
	replies map[string]string
}

func (s *scriptedService) Enabled() bool { return true }

func (s *scriptedService) Complete(_ context.Context, _, user string, _ llm.Options) (string, error) {
	for marker, reply := range s.replies {
		if strings.Contains(user, marker) {
			return reply, nil
		}
	}
	return "", errors.New("unscripted prompt")
}

// offlineService simulates a deployment without an understanding service.
type offlineService struct{}

func (offlineService) Enabled() bool { return false }

func (offlineService) Complete(context.Context, string, string, llm.Options) (string, error) {
	return "", llm.ErrUnavailable
}

type fakeRepository struct {
	texts     []*corpus.TextBlob
	sentences []*corpus.SentencePair
	aids      []*corpus.TranslationAid

	textErr     error
	sentenceErr error
	parallelErr error
}

func (f *fakeRepository) CreateText(_ context.Context, blob *corpus.TextBlob) error {
	if f.textErr != nil {
		return f.textErr
	}
	f.texts = append(f.texts, blob)
	return nil
}

func (f *fakeRepository) CreateSentences(_ context.Context, pairs []*corpus.SentencePair) error {
	if f.sentenceErr != nil {
		return f.sentenceErr
	}
	f.sentences = append(f.sentences, pairs...)
	return nil
}

func (f *fakeRepository) CreateAids(_ context.Context, aids []*corpus.TranslationAid) error {
	f.aids = append(f.aids, aids...)
	return nil
}

func (f *fakeRepository) ListSentences(context.Context) ([]*corpus.ReviewSentence, error) {
	return nil, nil
}

func (f *fakeRepository) UpdateSentence(context.Context, string, corpus.SentenceUpdate) (*corpus.SentencePair, error) {
	return nil, apperr.NotFound("sentence")
}

func (f *fakeRepository) DeleteSentence(context.Context, string) error { return nil }

func (f *fakeRepository) ListParallelSentences(context.Context) ([]*corpus.SentencePair, error) {
	if f.parallelErr != nil {
		return nil, f.parallelErr
	}
	return f.sentences, nil
}

func (f *fakeRepository) ListTexts(context.Context, int, int) ([]*corpus.TextBlob, int, error) {
	return f.texts, len(f.texts), nil
}

func (f *fakeRepository) ListContributors(context.Context) ([]*corpus.Contributor, error) {
	return nil, nil
}

func (f *fakeRepository) Stats(context.Context) (*corpus.Stats, error) {
	return &corpus.Stats{TextCount: len(f.texts), SentenceCount: len(f.sentences)}, nil
}

func newTestService(repo corpus.Repository, svc pipeline.Completer) *corpus.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return corpus.NewService(repo, pipeline.NewProcessor(svc, logger), observe.Discard{}, logger)
}

// # Submission Scenarios

func TestProcessSubmission_ParallelWithAlignment(t *testing.T) {
	repo := &fakeRepository{}
	svc := &scriptedService{replies: map[string]string{
		"aus diesem halunder": `[{"position": 0, "content": "Deät wiar en Dai."}, {"position": 1, "content": "Wat nü?"}]`,
		"aus diesem german":   `[{"position": 0, "content": "Das war ein Tag."}, {"position": 1, "content": "Was nun?"}]`,
		"Matche":              `[{"halunder_index": 0, "german_index": 0, "confidence": 0.95, "reasoning": "Inhalt"}, {"halunder_index": 1, "german_index": 1, "confidence": 0.9, "reasoning": "Frageform"}]`,
	}}
	service := newTestService(repo, svc)

	result, err := service.ProcessSubmission(context.Background(), &corpus.Submission{
		HalunderText: "Deät wiar en Dai. Wat nü?",
		GermanText:   "Das war ein Tag. Was nun?",
		AddedBy:      "Jakob",
	})

	require.NoError(t, err)
	assert.True(t, result.HasParallel)
	assert.Equal(t, 2, result.SentenceCount)

	require.Len(t, repo.texts, 2)
	halunderBlob, germanBlob := repo.texts[0], repo.texts[1]
	assert.Equal(t, constants.LanguageHalunder, halunderBlob.Language)
	assert.Equal(t, constants.TextTypeParallel, halunderBlob.TextType)
	assert.Equal(t, constants.TextTypeTranslation, germanBlob.TextType)
	require.NotNil(t, germanBlob.TranslationOf)
	assert.Equal(t, halunderBlob.ID, *germanBlob.TranslationOf)
	require.NotNil(t, germanBlob.MatchConfidence)
	assert.InDelta(t, 1.0, *germanBlob.MatchConfidence, 1e-9)

	require.Len(t, repo.sentences, 2)
	first := repo.sentences[0]
	assert.Equal(t, halunderBlob.ID, first.TextID)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, "Deät wiar en Dai.", *first.HalunderText)
	assert.Equal(t, "Das war ein Tag.", *first.GermanText)
	assert.InDelta(t, 0.95, *first.MatchConfidence, 1e-9)
	assert.Equal(t, "Inhalt", first.LinguisticNotes)
}

func TestProcessSubmission_OutOfBoundsMatchesAreSkipped(t *testing.T) {
	repo := &fakeRepository{}
	svc := &scriptedService{replies: map[string]string{
		"aus diesem halunder": `[{"position": 0, "content": "Een."}, {"position": 1, "content": "Twee."}]`,
		"aus diesem german":   `[{"position": 0, "content": "Eins."}, {"position": 1, "content": "Zwei."}]`,
		"Matche":              `[{"halunder_index": 0, "german_index": 0, "confidence": 0.9, "reasoning": "ok"}, {"halunder_index": 7, "german_index": 1, "confidence": 0.9, "reasoning": "kaputt"}]`,
	}}
	service := newTestService(repo, svc)

	result, err := service.ProcessSubmission(context.Background(), &corpus.Submission{
		HalunderText: "Een. Twee.",
		GermanText:   "Eins. Zwei.",
		AddedBy:      "Julius",
	})

	require.NoError(t, err)
	// One matched pair, one unmatched Halunder, one unmatched German.
	assert.Equal(t, 3, result.SentenceCount)
	require.Len(t, repo.sentences, 3)

	for index, pair := range repo.sentences {
		assert.Equal(t, index, pair.Position, "positions must be dense in emission order")
	}

	assert.NotNil(t, repo.sentences[0].GermanText)
	assert.Equal(t, "Twee.", *repo.sentences[1].HalunderText)
	assert.Nil(t, repo.sentences[1].GermanText)
	assert.Equal(t, "Zwei.", *repo.sentences[2].GermanText)
	assert.Nil(t, repo.sentences[2].HalunderText)
}

func TestProcessSubmission_DuplicateClaimMatchesAreKept(t *testing.T) {
	repo := &fakeRepository{}
	svc := &scriptedService{replies: map[string]string{
		"aus diesem halunder": `[{"position": 0, "content": "Een."}, {"position": 1, "content": "Twee."}]`,
		"aus diesem german":   `[{"position": 0, "content": "Eins."}, {"position": 1, "content": "Zwei."}]`,
		"Matche":              `[{"halunder_index": 0, "german_index": 0, "confidence": 0.9, "reasoning": "erst"}, {"halunder_index": 0, "german_index": 1, "confidence": 0.6, "reasoning": "nochmal"}]`,
	}}
	service := newTestService(repo, svc)

	result, err := service.ProcessSubmission(context.Background(), &corpus.Submission{
		HalunderText: "Een. Twee.",
		GermanText:   "Eins. Zwei.",
		AddedBy:      "Julius",
	})

	require.NoError(t, err)
	// Both matches survive even though they claim Halunder index 0 twice:
	// two matched pairs, then only the never-claimed "Twee." as unmatched.
	assert.Equal(t, 3, result.SentenceCount)
	require.Len(t, repo.sentences, 3)

	assert.Equal(t, "Een.", *repo.sentences[0].HalunderText)
	assert.Equal(t, "Eins.", *repo.sentences[0].GermanText)
	assert.Equal(t, "Een.", *repo.sentences[1].HalunderText)
	assert.Equal(t, "Zwei.", *repo.sentences[1].GermanText)
	assert.Equal(t, "Twee.", *repo.sentences[2].HalunderText)
	assert.Nil(t, repo.sentences[2].GermanText)

	for index, pair := range repo.sentences {
		assert.Equal(t, index, pair.Position)
	}
}

func TestProcessSubmission_OfflineFallsBackEverywhere(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, offlineService{})

	result, err := service.ProcessSubmission(context.Background(), &corpus.Submission{
		HalunderText:    "Deät wiar en Dai. Wat nü?",
		GermanText:      "Das war ein Tag. Was nun?",
		TranslationAids: "Oaber - Aber\nküm: kam",
		AddedBy:         "Jakob",
	})

	require.NoError(t, err)
	assert.True(t, result.HasParallel)
	assert.Equal(t, 2, result.SentenceCount)
	assert.Equal(t, 2, result.AidCount)
	assert.Equal(t, 0, result.IdiomCount)

	require.Len(t, repo.sentences, 2)
	for index, pair := range repo.sentences {
		require.NotNil(t, pair.MatchConfidence)
		assert.InDelta(t, 0.8, *pair.MatchConfidence, 1e-9)
		assert.Contains(t, pair.LinguisticNotes, "Automatisches 1:1 Matching")
		assert.Equal(t, index, pair.Position)
	}

	require.Len(t, repo.aids, 2)
	assert.Equal(t, repo.texts[0].ID, repo.aids[0].TextID)
	assert.Equal(t, "Oaber", repo.aids[0].HalunderTerm)
	assert.Equal(t, "Automatisch extrahiert", repo.aids[0].Notes)
}

func TestProcessSubmission_MonolingualHalunder(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, offlineService{})

	result, err := service.ProcessSubmission(context.Background(), &corpus.Submission{
		HalunderText: "Deät wiar wat uun e Hemel. Dja, soo wiar deät.",
		AddedBy:      "Julius",
	})

	require.NoError(t, err)
	assert.False(t, result.HasParallel)
	assert.Equal(t, constants.LanguageHalunder, result.Classification.PrimaryLanguage)
	assert.InDelta(t, 0.9, result.Classification.Confidence, 1e-9)
	assert.Empty(t, result.GermanTextID)

	require.Len(t, repo.texts, 1)
	assert.Equal(t, constants.TextTypeMonolingual, repo.texts[0].TextType)
	assert.Nil(t, repo.texts[0].TranslationOf)

	require.Len(t, repo.sentences, 2)
	for _, pair := range repo.sentences {
		assert.NotNil(t, pair.HalunderText)
		assert.Nil(t, pair.GermanText)
		assert.Nil(t, pair.MatchConfidence)
		assert.Equal(t, repo.texts[0].ID, pair.TextID)
	}
}

func TestProcessSubmission_MonolingualGerman(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, offlineService{})

	result, err := service.ProcessSubmission(context.Background(), &corpus.Submission{
		GermanText: "Das ist ein deutscher Satz. Und noch einer hinterher.",
		AddedBy:    "Jakob",
	})

	require.NoError(t, err)
	assert.Equal(t, constants.LanguageGerman, result.Classification.PrimaryLanguage)
	assert.Empty(t, result.HalunderTextID)
	require.Len(t, repo.texts, 1)
	assert.Equal(t, constants.LanguageGerman, repo.texts[0].Language)

	require.Len(t, repo.sentences, 2)
	for _, pair := range repo.sentences {
		assert.Nil(t, pair.HalunderText)
		assert.NotNil(t, pair.GermanText)
	}
}

func TestProcessSubmission_EmptySegmentationSkipsAlignment(t *testing.T) {
	repo := &fakeRepository{}
	svc := &scriptedService{replies: map[string]string{
		"aus diesem halunder": `[{"position": 0, "content": "Deät wiar en Dai."}]`,
		"aus diesem german":   `[]`,
	}}
	service := newTestService(repo, svc)

	result, err := service.ProcessSubmission(context.Background(), &corpus.Submission{
		HalunderText: "Deät wiar en Dai.",
		GermanText:   "Das war ein Tag.",
		AddedBy:      "Jakob",
	})

	require.NoError(t, err)
	assert.True(t, result.HasParallel)
	assert.Equal(t, 0, result.SentenceCount)
	assert.Empty(t, repo.sentences)
	// Both blobs are stored even though no pairs were produced.
	assert.Len(t, repo.texts, 2)
}

func TestProcessSubmission_SentenceInsertFailureKeepsBlobs(t *testing.T) {
	repo := &fakeRepository{sentenceErr: apperr.Internal(errors.New("connection reset"))}
	service := newTestService(repo, offlineService{})

	_, err := service.ProcessSubmission(context.Background(), &corpus.Submission{
		HalunderText: "Deät wiar en Dai. Wat nü?",
		GermanText:   "Das war ein Tag. Was nun?",
		AddedBy:      "Jakob",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsAppError(err))
	// The blob inserts are not rolled back when the pair insert fails.
	assert.Len(t, repo.texts, 2)
	assert.Empty(t, repo.sentences)
}

func TestProcessSubmission_Validation(t *testing.T) {
	service := newTestService(&fakeRepository{}, offlineService{})

	_, err := service.ProcessSubmission(context.Background(), &corpus.Submission{
		HalunderText: "Deät wiar en Dai.",
	})
	require.Error(t, err, "missing added_by must fail")

	_, err = service.ProcessSubmission(context.Background(), &corpus.Submission{
		AddedBy: "Jakob",
	})
	require.Error(t, err, "a submission without any text must fail")
}

// # Review Operations

func TestUpdateSentence_ValidatesConfidenceRange(t *testing.T) {
	service := newTestService(&fakeRepository{}, offlineService{})

	confidence := 1.5
	_, err := service.UpdateSentence(context.Background(),
		"0198c5b6-0000-7000-8000-000000000001",
		corpus.SentenceUpdate{MatchConfidence: &confidence},
	)

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestDeleteSentence_RejectsMalformedID(t *testing.T) {
	service := newTestService(&fakeRepository{}, offlineService{})

	err := service.DeleteSentence(context.Background(), "not-a-uuid")

	require.Error(t, err)
}
