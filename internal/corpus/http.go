// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

/*
Package corpus provides the HTTP interface of the corpus service.

It exposes the submission endpoint that feeds the ingestion pipeline plus the
review, export and status endpoints used by the project's editors.

# Routing Strategy

  - Ingestion: POST /submissions runs the full pipeline synchronously; the
    understanding-service calls make this a long request.
  - Review: GET/PUT/DELETE on /sentences back the correction table.
  - Export: GET /export/parallel streams the corpus as CSV.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package corpus

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/halunder/corpus/internal/observe"
	"github.com/halunder/corpus/internal/platform/ctxutil"
	requestutil "github.com/halunder/corpus/internal/platform/request"
	"github.com/halunder/corpus/internal/platform/respond"
	"github.com/halunder/corpus/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer of the corpus domain.
type Handler struct {
	service *Service
	logs    *observe.Ring
}

// NewHandler constructs a corpus [Handler]. The ring may be nil when the
// deployment does not expose live processing logs.
func NewHandler(service *Service, logs *observe.Ring) *Handler {
	return &Handler{service: service, logs: logs}
}

// Routes returns a [chi.Router] configured with the corpus endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/status", handler.status)
	router.Get("/contributors", handler.listContributors)
	router.Get("/logs", handler.processingLogs)

	router.Post("/submissions", handler.processSubmission)
	router.Get("/texts", handler.listTexts)

	router.Get("/sentences", handler.listSentences)
	router.Put("/sentences/{id}", handler.updateSentence)
	router.Delete("/sentences/{id}", handler.deleteSentence)

	router.Get("/export/parallel", handler.exportParallel)

	return router
}

// # Ingestion Endpoints

/*
POST /api/v1/submissions.

Description: Accepts one submission-form payload and processes it through the
full pipeline. The request blocks until every stage has finished.

Response:
  - 201: Result: Blob IDs, classification and extraction counters
  - 400: Validation failures (missing added_by, no text at all)
*/
func (handler *Handler) processSubmission(writer http.ResponseWriter, request *http.Request) {
	submission := &Submission{}
	if err := requestutil.DecodeJSON(request, submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ProcessSubmission(request.Context(), submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
GET /api/v1/texts.

Description: Retrieves a paginated list of stored text blobs, newest first.

Request:
  - limit: int
  - page: int

Response:
  - 200: []TextBlob: Paginated blob list
*/
func (handler *Handler) listTexts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	blobs, total, err := handler.service.ListTexts(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, blobs, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// # Review Endpoints

// GET /api/v1/sentences returns every pair with source metadata for the
// review table.
func (handler *Handler) listSentences(writer http.ResponseWriter, request *http.Request) {
	sentences, err := handler.service.ListSentences(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sentences)
}

/*
PUT /api/v1/sentences/{id}.

Description: Applies an editor's correction. Only fields present in the body
are changed.

Response:
  - 200: SentencePair: The updated row
  - 404: Unknown sentence id
*/
func (handler *Handler) updateSentence(writer http.ResponseWriter, request *http.Request) {
	update := SentenceUpdate{}
	if err := requestutil.DecodeJSON(request, &update); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.service.UpdateSentence(request.Context(), requestutil.ID(request, "id"), update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pair)
}

// DELETE /api/v1/sentences/{id} removes a pair permanently.
func (handler *Handler) deleteSentence(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSentence(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Export & Status Endpoints

// GET /api/v1/export/parallel streams the aligned corpus as a CSV download.
// The rows are fetched before the download headers are committed, so a
// repository failure still surfaces as a regular JSON error response.
func (handler *Handler) exportParallel(writer http.ResponseWriter, request *http.Request) {
	pairs, err := handler.service.ListParallelSentences(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	output := respond.CSVAttachment(writer, ExportFilename(time.Now()))
	if err := WriteSentenceCSV(pairs, output); err != nil {
		// Status and headers are already committed; log and stop streaming.
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(),
			"csv_export_aborted", slog.String("error", err.Error()))
	}
}

// GET /api/v1/status returns the corpus size counters.
func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

// GET /api/v1/contributors returns the submission-form dropdown names.
func (handler *Handler) listContributors(writer http.ResponseWriter, request *http.Request) {
	contributors, err := handler.service.ListContributors(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contributors)
}

// GET /api/v1/logs returns the most recent pipeline events, oldest first.
func (handler *Handler) processingLogs(writer http.ResponseWriter, request *http.Request) {
	if handler.logs == nil {
		respond.OK(writer, []observe.Event{})
		return
	}

	respond.OK(writer, handler.logs.Snapshot())
}
