// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

/*
Package corpus defines the domain entities of the Halunder–German corpus.

It manages the lifecycle of submitted texts: raw OCR input becomes cleaned
text blobs, segmented sentence pairs and extracted translation aids.

Core Responsibility:

  - Ingestion: Accepts scanned submissions and runs them through the
    understanding pipeline (cleanup, classification, segmentation, alignment).
  - Review: Exposes sentence pairs with their source metadata for manual
    correction by the project's editors.
  - Export: Produces the parallel corpus as CSV for downstream NLP training.

This package acts as the source of truth for all corpus data models.
*/
package corpus

import "time"

// # Core Entities

// TextBlob is a cleaned text in one language as stored in the corpus.
// A parallel submission produces two blobs linked via [TextBlob.TranslationOf].
type TextBlob struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Language  string `json:"language"`  // halunder or german
	TextType  string `json:"text_type"` // parallel, translation or monolingual
	CreatedAt time.Time `json:"created_at"`

	// # Provenance
	SourceTitle  string `json:"source_title,omitempty"`
	SourceAuthor string `json:"source_author,omitempty"`
	SourcePage   string `json:"source_page,omitempty"`
	SourceDate   string `json:"source_date,omitempty"`
	AddedBy      string `json:"added_by"`
	Proofread    bool   `json:"proofread"`
	ProofreadBy  string `json:"proofread_by,omitempty"`

	// # Parallel Linkage
	// TranslationOf points from the German blob to its Halunder original.
	TranslationOf   *string  `json:"translation_of,omitempty"`
	MatchConfidence *float64 `json:"match_confidence,omitempty"`
}

// SentencePair is one row of the sentence corpus. Either side may be empty
// when the sentence has no counterpart in the other language.
type SentencePair struct {
	ID              string    `json:"id"`
	TextID          string    `json:"text_id"`
	Position        int       `json:"position"`
	HalunderText    *string   `json:"halunder_text,omitempty"`
	GermanText      *string   `json:"german_text,omitempty"`
	MatchConfidence *float64  `json:"match_confidence,omitempty"`
	LinguisticNotes string    `json:"linguistic_notes,omitempty"` // alignment reasoning
	IsIdiom         bool      `json:"is_idiom"`
	CreatedAt       time.Time `json:"created_at"`
}

// ReviewSentence is a [SentencePair] joined with the metadata of its source
// blob, as shown in the review table.
type ReviewSentence struct {
	SentencePair
	SourceTitle  string `json:"source_title,omitempty"`
	SourceAuthor string `json:"source_author,omitempty"`
	SourcePage   string `json:"source_page,omitempty"`
	AddedBy      string `json:"added_by,omitempty"`
}

// TranslationAid is a vocabulary hint attached to a text blob.
type TranslationAid struct {
	ID                string    `json:"id"`
	TextID            string    `json:"text_id"`
	HalunderTerm      string    `json:"halunder_term"`
	GermanTranslation string    `json:"german_translation"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Contributor is a person who submits or reviews texts. The list backs the
// "added by" dropdown in the submission form.
type Contributor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// # Ingestion Contracts

// Submission is the raw input of the submission form: page text in one or
// both languages plus provenance fields.
type Submission struct {
	HalunderText      string `json:"halunder_text"`
	GermanText        string `json:"german_text"`
	TranslationAids   string `json:"translation_aids"`
	IdiomExplanations string `json:"idiom_explanations"`
	SourceTitle       string `json:"source_title"`
	SourceAuthor      string `json:"source_author"`
	SourcePage        string `json:"source_page"`
	SourceDate        string `json:"source_date"`
	Proofread         bool   `json:"proofread"`
	ProofreadBy       string `json:"proofread_by"`
	AddedBy           string `json:"added_by"`
}

// Classification mirrors the pipeline's language detection in API responses.
type Classification struct {
	PrimaryLanguage string  `json:"primary_language"`
	Confidence      float64 `json:"confidence"`
}

// Result summarizes what a processed submission produced.
type Result struct {
	HalunderTextID string         `json:"halunder_text_id,omitempty"`
	GermanTextID   string         `json:"german_text_id,omitempty"`
	Classification Classification `json:"classification"`
	HasParallel    bool           `json:"has_parallel"`
	SentenceCount  int            `json:"sentences_extracted"`
	AidCount       int            `json:"translation_aids_extracted"`
	IdiomCount     int            `json:"idioms_extracted"`
}

// SentenceUpdate carries the editable fields of a review correction.
// Nil pointers leave the stored value untouched.
type SentenceUpdate struct {
	HalunderText    *string  `json:"halunder_text"`
	GermanText      *string  `json:"german_text"`
	MatchConfidence *float64 `json:"match_confidence"`
	LinguisticNotes *string  `json:"linguistic_notes"`
	IsIdiom         *bool    `json:"is_idiom"`
}

// Stats is the corpus size overview served by the status endpoint.
type Stats struct {
	TextCount     int `json:"text_count"`
	SentenceCount int `json:"sentence_count"`
	ParallelCount int `json:"parallel_count"`
	AidCount      int `json:"translation_aid_count"`
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID              = "id"
	FieldHalunderText    = "halunder_text"
	FieldGermanText      = "german_text"
	FieldTranslationAids = "translation_aids"
	FieldSourceTitle     = "source_title"
	FieldSourceAuthor    = "source_author"
	FieldSourcePage      = "source_page"
	FieldSourceDate      = "source_date"
	FieldAddedBy         = "added_by"
	FieldProofreadBy     = "proofread_by"
	FieldMatchConfidence = "match_confidence"
	FieldLinguisticNotes = "linguistic_notes"
	FieldIsIdiom         = "is_idiom"
)

// maxSubmissionRunes bounds a single submitted page. The scans this corpus is
// built from stay well below it; anything larger is a client error.
const maxSubmissionRunes = 50000
