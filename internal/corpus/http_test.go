// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package corpus_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halunder/corpus/internal/corpus"
	"github.com/halunder/corpus/internal/observe"
	"github.com/halunder/corpus/internal/platform/apperr"
	"github.com/halunder/corpus/pkg/pointer"
)

func newTestRouter(repo corpus.Repository, logs *observe.Ring) http.Handler {
	service := newTestService(repo, offlineService{})
	return corpus.NewHandler(service, logs).Routes()
}

func TestHandler_ProcessSubmission(t *testing.T) {
	repo := &fakeRepository{}
	router := newTestRouter(repo, nil)

	body := `{
		"halunder_text": "Deät wiar en Dai. Wat nü?",
		"german_text": "Das war ein Tag. Was nun?",
		"added_by": "Jakob"
	}`
	request := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"has_parallel":true`)
	assert.Len(t, repo.texts, 2)
}

func TestHandler_ProcessSubmission_ValidationEnvelope(t *testing.T) {
	router := newTestRouter(&fakeRepository{}, nil)

	request := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(`{"halunder_text": "Deät."}`))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"code":"VALIDATION_ERROR"`)
	assert.Contains(t, recorder.Body.String(), "added_by")
}

func TestHandler_ProcessingLogs(t *testing.T) {
	logs := observe.NewRing(10)
	logs.Record("Texte bereinigt", observe.LevelInfo)
	router := newTestRouter(&fakeRepository{}, logs)

	request := httptest.NewRequest(http.MethodGet, "/logs", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Texte bereinigt")
}

func TestHandler_ExportParallelSetsCSVHeaders(t *testing.T) {
	repo := &fakeRepository{sentences: []*corpus.SentencePair{{
		ID:           "0198c5b6-0000-7000-8000-000000000001",
		HalunderText: pointer.To("Deät wiar en Dai."),
		GermanText:   pointer.To("Das war ein Tag."),
	}}}
	router := newTestRouter(repo, nil)

	request := httptest.NewRequest(http.MethodGet, "/export/parallel", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/csv; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "halunder_parallel_corpus_")

	// Body starts with the UTF-8 BOM so spreadsheets decode umlauts.
	raw := recorder.Body.Bytes()
	require.Greater(t, len(raw), 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])
}

func TestHandler_ExportParallelRepositoryFailure(t *testing.T) {
	repo := &fakeRepository{parallelErr: apperr.Internal(errors.New("connection reset"))}
	router := newTestRouter(repo, nil)

	request := httptest.NewRequest(http.MethodGet, "/export/parallel", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	// The lookup fails before any download headers are committed, so the
	// client gets a plain JSON error instead of a broken CSV body.
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")
	assert.Empty(t, recorder.Header().Get("Content-Disposition"))
	assert.NotEqual(t, []byte{0xEF, 0xBB, 0xBF}, recorder.Body.Bytes()[:3])
	assert.Contains(t, recorder.Body.String(), `"code":"INTERNAL_ERROR"`)
}
