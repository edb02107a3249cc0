// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package corpus

import "context"

// # Corpus Data Access

// Repository defines the data access contract for the corpus domain.
type Repository interface {

	/*
		CreateText persists one cleaned text blob.

		Parameters:
		  - context: context.Context
		  - blob: *TextBlob (ID must be set by the caller)

		Returns:
		  - error: Storage or constraint failures
	*/
	CreateText(context context.Context, blob *TextBlob) error

	/*
		CreateSentences bulk-inserts sentence pairs atomically.
		Either every pair is stored or none is.

		Parameters:
		  - context: context.Context
		  - pairs: []*SentencePair

		Returns:
		  - error: Storage or constraint failures
	*/
	CreateSentences(context context.Context, pairs []*SentencePair) error

	/*
		CreateAids bulk-inserts translation aids atomically.

		Parameters:
		  - context: context.Context
		  - aids: []*TranslationAid

		Returns:
		  - error: Storage or constraint failures
	*/
	CreateAids(context context.Context, aids []*TranslationAid) error

	/*
		ListSentences returns all sentence pairs joined with their source
		metadata, oldest first, for the review table.

		Returns:
		  - []*ReviewSentence: Every stored pair with blob provenance
		  - error: Database retrieval failures
	*/
	ListSentences(context context.Context) ([]*ReviewSentence, error)

	/*
		UpdateSentence applies a partial correction to one sentence pair.

		Returns:
		  - *SentencePair: The row after the update
		  - error: ErrNotFound when the id does not exist
	*/
	UpdateSentence(context context.Context, id string, update SentenceUpdate) (*SentencePair, error)

	/*
		DeleteSentence removes one sentence pair permanently.

		Returns:
		  - error: ErrNotFound when the id does not exist
	*/
	DeleteSentence(context context.Context, id string) error

	/*
		ListParallelSentences returns the pairs where both language sides are
		present, oldest first. This is the export data set.
	*/
	ListParallelSentences(context context.Context) ([]*SentencePair, error)

	/*
		ListTexts returns a page of stored text blobs, newest first, with the
		total blob count for pagination metadata.
	*/
	ListTexts(context context.Context, limit, offset int) ([]*TextBlob, int, error)

	// ListContributors returns all contributors ordered by name.
	ListContributors(context context.Context) ([]*Contributor, error)

	// Stats returns the corpus size counters for the status endpoint.
	Stats(context context.Context) (*Stats, error)
}
