// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/halunder/corpus/internal/observe"
	"github.com/halunder/corpus/internal/pipeline"
	"github.com/halunder/corpus/internal/platform/constants"
	"github.com/halunder/corpus/internal/platform/validate"
	"github.com/halunder/corpus/pkg/pointer"
	"github.com/halunder/corpus/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the corpus ingestion pipeline and the review
// operations on the stored sentence corpus.
type Service struct {
	repo   Repository
	stages *pipeline.Processor
	sink   observe.Sink
	logger *slog.Logger
}

// NewService constructs a new [Service]. A nil sink disables progress events.
func NewService(repo Repository, stages *pipeline.Processor, sink observe.Sink, logger *slog.Logger) *Service {
	if sink == nil {
		sink = observe.Discard{}
	}
	return &Service{
		repo:   repo,
		stages: stages,
		sink:   sink,
		logger: logger,
	}
}

// # Submission Processing

/*
ProcessSubmission runs one submission through the full ingestion pipeline.

Description: The stages run strictly in sequence: cleanup of both language
sides, language classification for monolingual input, blob persistence,
segmentation, alignment, sentence persistence and finally translation-aid
extraction. Understanding-service failures degrade each stage to its
deterministic fallback; only persistence failures abort the submission.

Parameters:
  - context: context.Context
  - submission: *Submission (Raw form input)

Returns:
  - *Result: Blob IDs, classification and extraction counters
  - error: Validation or persistence errors
*/
func (service *Service) ProcessSubmission(context context.Context, submission *Submission) (*Result, error) {

	// Step 1: Input validation
	validator := &validate.Validator{}
	validator.Required(FieldAddedBy, submission.AddedBy)
	validator.MaxLen(FieldHalunderText, submission.HalunderText, maxSubmissionRunes)
	validator.MaxLen(FieldGermanText, submission.GermanText, maxSubmissionRunes)
	validator.Custom("text",
		strings.TrimSpace(submission.HalunderText) == "" && strings.TrimSpace(submission.GermanText) == "",
		"At least one of halunder_text or german_text is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.record(fmt.Sprintf("Verarbeitung gestartet (von %s)", submission.AddedBy), observe.LevelInfo)

	// Step 2: OCR cleanup, each side independently
	cleanedHalunder := ""
	if submission.HalunderText != "" {
		cleanedHalunder = service.stages.Cleaner.Clean(context, submission.HalunderText)
	}
	cleanedGerman := ""
	if submission.GermanText != "" {
		cleanedGerman = service.stages.Cleaner.Clean(context, submission.GermanText)
	}
	service.record("Texte bereinigt", observe.LevelInfo)

	// Step 3: Nothing survived cleanup
	if cleanedHalunder == "" && cleanedGerman == "" {
		return &Result{
			Classification: Classification{PrimaryLanguage: constants.LanguageHalunder, Confidence: 1.0},
		}, nil
	}

	// Step 4: Language classification, only for monolingual input
	classification := Classification{PrimaryLanguage: constants.LanguageHalunder, Confidence: 1.0}
	if cleanedHalunder != "" && cleanedGerman == "" {
		detected := service.stages.Classifier.Classify(context, cleanedHalunder)
		classification = Classification{PrimaryLanguage: detected.PrimaryLanguage, Confidence: detected.Confidence}
	} else if cleanedGerman != "" && cleanedHalunder == "" {
		detected := service.stages.Classifier.Classify(context, cleanedGerman)
		classification = Classification{PrimaryLanguage: detected.PrimaryLanguage, Confidence: detected.Confidence}
	}

	hasParallel := cleanedHalunder != "" && cleanedGerman != ""

	// Step 5: Persist the blobs, Halunder first so the German blob can link it
	result := &Result{Classification: classification, HasParallel: hasParallel}

	if cleanedHalunder != "" {
		blob := service.buildBlob(submission, cleanedHalunder, constants.LanguageHalunder, hasParallel)
		if err := service.repo.CreateText(context, blob); err != nil {
			service.record("Speichern des Halunder-Textes fehlgeschlagen", observe.LevelError)
			return nil, err
		}
		result.HalunderTextID = blob.ID
	}

	if cleanedGerman != "" {
		blob := service.buildBlob(submission, cleanedGerman, constants.LanguageGerman, hasParallel)
		if hasParallel {
			blob.TranslationOf = &result.HalunderTextID
			blob.MatchConfidence = pointer.To(1.0)
		}
		if err := service.repo.CreateText(context, blob); err != nil {
			service.record("Speichern des deutschen Textes fehlgeschlagen", observe.LevelError)
			return nil, err
		}
		result.GermanTextID = blob.ID
	}
	service.record("Texte gespeichert", observe.LevelInfo)

	// Step 6 & 7: Segmentation and alignment
	var pairs []*SentencePair
	if hasParallel {
		pairs = service.assembleParallel(context, cleanedHalunder, cleanedGerman, result.HalunderTextID)
	} else {
		pairs = service.assembleMonolingual(context, cleanedHalunder, cleanedGerman, result)
	}

	// Step 8: Persist sentence pairs atomically
	if len(pairs) > 0 {
		if err := service.repo.CreateSentences(context, pairs); err != nil {
			service.record("Speichern der Sätze fehlgeschlagen", observe.LevelError)
			return nil, err
		}
	}
	result.SentenceCount = len(pairs)
	service.record(fmt.Sprintf("%d Sätze gespeichert", len(pairs)), observe.LevelInfo)

	// Step 9: Translation aids
	if submission.TranslationAids != "" {
		ownerID := result.HalunderTextID
		if ownerID == "" {
			ownerID = result.GermanTextID
		}

		aids := pipeline.ExtractAids(submission.TranslationAids)
		rows := make([]*TranslationAid, 0, len(aids))
		for _, aid := range aids {
			rows = append(rows, &TranslationAid{
				ID:                uuidv7.New(),
				TextID:            ownerID,
				HalunderTerm:      aid.HalunderTerm,
				GermanTranslation: aid.GermanTranslation,
				Notes:             aid.Notes,
			})
		}
		if len(rows) > 0 {
			if err := service.repo.CreateAids(context, rows); err != nil {
				service.record("Speichern der Übersetzungshilfen fehlgeschlagen", observe.LevelError)
				return nil, err
			}
		}
		result.AidCount = len(rows)
	}

	// Step 10: Idioms (reserved, currently always empty)
	result.IdiomCount = len(pipeline.ExtractIdioms(cleanedHalunder))

	service.record("Verarbeitung abgeschlossen", observe.LevelInfo)
	service.logger.Info("submission_processed",
		slog.String("added_by", submission.AddedBy),
		slog.Bool("has_parallel", hasParallel),
		slog.Int("sentences", result.SentenceCount),
		slog.Int("aids", result.AidCount),
	)

	return result, nil
}

// assembleParallel segments both sides and turns alignment matches into
// sentence pairs. Matched pairs come first, then unmatched Halunder
// sentences, then unmatched German sentences; positions count up in that
// emission order.
func (service *Service) assembleParallel(context context.Context, halunder, german, halunderTextID string) []*SentencePair {
	halunderFragments := service.stages.Segmenter.Segment(context, halunder, constants.LanguageHalunder)
	germanFragments := service.stages.Segmenter.Segment(context, german, constants.LanguageGerman)
	service.record(fmt.Sprintf("%d Halunder- und %d deutsche Sätze erkannt",
		len(halunderFragments), len(germanFragments)), observe.LevelInfo)

	// One empty side means there is nothing to align against.
	if len(halunderFragments) == 0 || len(germanFragments) == 0 {
		return nil
	}

	halunderContents := fragmentContents(halunderFragments)
	germanContents := fragmentContents(germanFragments)

	matches := service.stages.Aligner.Align(context, halunderContents, germanContents)

	var pairs []*SentencePair
	claimedHalunder := map[int]bool{}
	claimedGerman := map[int]bool{}

	for _, match := range matches {
		// Out-of-range indices from the understanding service are dropped.
		if match.HalunderIndex < 0 || match.HalunderIndex >= len(halunderFragments) {
			continue
		}
		if match.GermanIndex < 0 || match.GermanIndex >= len(germanFragments) {
			continue
		}

		pairs = append(pairs, &SentencePair{
			ID:              uuidv7.New(),
			TextID:          halunderTextID,
			Position:        len(pairs),
			HalunderText:    &halunderContents[match.HalunderIndex],
			GermanText:      &germanContents[match.GermanIndex],
			MatchConfidence: pointer.To(match.Confidence),
			LinguisticNotes: match.Reasoning,
		})
		claimedHalunder[match.HalunderIndex] = true
		claimedGerman[match.GermanIndex] = true
	}

	for index := range halunderFragments {
		if claimedHalunder[index] {
			continue
		}
		pairs = append(pairs, &SentencePair{
			ID:           uuidv7.New(),
			TextID:       halunderTextID,
			Position:     len(pairs),
			HalunderText: &halunderContents[index],
		})
	}

	for index := range germanFragments {
		if claimedGerman[index] {
			continue
		}
		pairs = append(pairs, &SentencePair{
			ID:         uuidv7.New(),
			TextID:     halunderTextID,
			Position:   len(pairs),
			GermanText: &germanContents[index],
		})
	}

	service.record(fmt.Sprintf("%d Satzpaare gebildet", len(pairs)), observe.LevelInfo)
	return pairs
}

// assembleMonolingual emits one single-sided pair per fragment. Fragment
// positions are stored as delivered by the segmenter.
func (service *Service) assembleMonolingual(context context.Context, halunder, german string, result *Result) []*SentencePair {
	var pairs []*SentencePair

	if halunder != "" {
		for _, fragment := range service.stages.Segmenter.Segment(context, halunder, constants.LanguageHalunder) {
			pairs = append(pairs, &SentencePair{
				ID:           uuidv7.New(),
				TextID:       result.HalunderTextID,
				Position:     fragment.Position,
				HalunderText: pointer.To(fragment.Content),
			})
		}
	} else if german != "" {
		for _, fragment := range service.stages.Segmenter.Segment(context, german, constants.LanguageGerman) {
			pairs = append(pairs, &SentencePair{
				ID:         uuidv7.New(),
				TextID:     result.GermanTextID,
				Position:   fragment.Position,
				GermanText: pointer.To(fragment.Content),
			})
		}
	}

	service.record(fmt.Sprintf("%d Sätze erkannt", len(pairs)), observe.LevelInfo)
	return pairs
}

// buildBlob assembles a [TextBlob] from the submission's provenance fields.
func (service *Service) buildBlob(submission *Submission, content, language string, hasParallel bool) *TextBlob {
	textType := constants.TextTypeMonolingual
	if hasParallel {
		textType = constants.TextTypeParallel
		if language == constants.LanguageGerman {
			textType = constants.TextTypeTranslation
		}
	}

	return &TextBlob{
		ID:           uuidv7.New(),
		Content:      content,
		Language:     language,
		TextType:     textType,
		SourceTitle:  submission.SourceTitle,
		SourceAuthor: submission.SourceAuthor,
		SourcePage:   submission.SourcePage,
		SourceDate:   submission.SourceDate,
		Proofread:    submission.Proofread,
		ProofreadBy:  submission.ProofreadBy,
		AddedBy:      submission.AddedBy,
	}
}

func fragmentContents(fragments []pipeline.Fragment) []string {
	contents := make([]string, len(fragments))
	for index, fragment := range fragments {
		contents[index] = fragment.Content
	}
	return contents
}

func (service *Service) record(message, level string) {
	service.sink.Record(message, level)
}

// # Review Operations

// ListSentences returns every stored pair with its source metadata.
func (service *Service) ListSentences(context context.Context) ([]*ReviewSentence, error) {
	return service.repo.ListSentences(context)
}

/*
UpdateSentence applies an editor's correction to one sentence pair.

Description: Supports partial updates; only non-nil fields are written.
Confidence corrections are validated against the [0, 1] range.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - update: SentenceUpdate (Changed fields)

Returns:
  - *SentencePair: The row after the update
  - error: Validation errors or ErrNotFound
*/
func (service *Service) UpdateSentence(context context.Context, id string, update SentenceUpdate) (*SentencePair, error) {
	validator := &validate.Validator{}
	validator.UUID(FieldID, id)
	if update.MatchConfidence != nil {
		validator.UnitRange(FieldMatchConfidence, *update.MatchConfidence)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	pair, err := service.repo.UpdateSentence(context, id, update)
	if err != nil {
		return nil, err
	}

	service.logger.Info("sentence_updated", slog.String("sentence_id", id))

	return pair, nil
}

// DeleteSentence removes one sentence pair permanently.
func (service *Service) DeleteSentence(context context.Context, id string) error {
	validator := &validate.Validator{}
	if err := validator.UUID(FieldID, id).Err(); err != nil {
		return err
	}

	if err := service.repo.DeleteSentence(context, id); err != nil {
		return err
	}

	service.logger.Warn("sentence_deleted", slog.String("sentence_id", id))

	return nil
}

// # Listings & Status

// ListTexts returns a page of stored blobs, newest first.
func (service *Service) ListTexts(context context.Context, limit, offset int) ([]*TextBlob, int, error) {
	return service.repo.ListTexts(context, limit, offset)
}

// ListContributors returns the submission-form dropdown entries.
func (service *Service) ListContributors(context context.Context) ([]*Contributor, error) {
	return service.repo.ListContributors(context)
}

// Stats returns the corpus size counters.
func (service *Service) Stats(context context.Context) (*Stats, error) {
	return service.repo.Stats(context)
}

// ListParallelSentences returns the fully aligned pairs for export.
func (service *Service) ListParallelSentences(context context.Context) ([]*SentencePair, error) {
	return service.repo.ListParallelSentences(context)
}
