// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package corpus

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halunder/corpus/internal/platform/database/schema"
	"github.com/halunder/corpus/internal/platform/dberr"
)

// # PostgreSQL Implementation

// PostgresRepository implements [Repository] on a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs the corpus repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Text Blobs

func (repository *PostgresRepository) CreateText(context context.Context, blob *TextBlob) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s;
	`,
		schema.CorpusText.Table,
		schema.CorpusText.ID,
		schema.CorpusText.Content,
		schema.CorpusText.Language,
		schema.CorpusText.TextType,
		schema.CorpusText.SourceTitle,
		schema.CorpusText.SourceAuthor,
		schema.CorpusText.SourcePage,
		schema.CorpusText.SourceDate,
		schema.CorpusText.Proofread,
		schema.CorpusText.ProofreadBy,
		schema.CorpusText.AddedBy,
		schema.CorpusText.TranslationOf,
		schema.CorpusText.MatchConfidence,
		schema.CorpusText.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		blob.ID,
		blob.Content,
		blob.Language,
		blob.TextType,
		blob.SourceTitle,
		blob.SourceAuthor,
		blob.SourcePage,
		blob.SourceDate,
		blob.Proofread,
		blob.ProofreadBy,
		blob.AddedBy,
		blob.TranslationOf,
		blob.MatchConfidence,
	).Scan(&blob.CreatedAt)

	return dberr.Wrap(err, "create_text")
}

func (repository *PostgresRepository) ListTexts(context context.Context, limit, offset int) ([]*TextBlob, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s;`, schema.CorpusText.Table)

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_texts")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2;
	`,
		strings.Join(schema.CorpusText.Columns(), ", "),
		schema.CorpusText.Table,
		schema.CorpusText.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_texts")
	}
	defer rows.Close()

	var blobs []*TextBlob
	for rows.Next() {
		blob := &TextBlob{}
		if err := rows.Scan(
			&blob.ID, &blob.Content, &blob.Language, &blob.TextType,
			&blob.SourceTitle, &blob.SourceAuthor, &blob.SourcePage, &blob.SourceDate,
			&blob.Proofread, &blob.ProofreadBy, &blob.AddedBy,
			&blob.TranslationOf, &blob.MatchConfidence, &blob.CreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_text")
		}
		blobs = append(blobs, blob)
	}

	return blobs, total, nil
}

// # Sentence Pairs

func (repository *PostgresRepository) CreateSentences(context context.Context, pairs []*SentencePair) error {
	if len(pairs) == 0 {
		return nil
	}

	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_sentences")
	}
	defer func() { _ = tx.Rollback(context) }()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`,
		schema.CorpusSentence.Table,
		schema.CorpusSentence.ID,
		schema.CorpusSentence.TextID,
		schema.CorpusSentence.Position,
		schema.CorpusSentence.HalunderText,
		schema.CorpusSentence.GermanText,
		schema.CorpusSentence.MatchConfidence,
		schema.CorpusSentence.LinguisticNotes,
		schema.CorpusSentence.IsIdiom,
	)

	batch := &pgx.Batch{}
	for _, pair := range pairs {
		batch.Queue(query,
			pair.ID,
			pair.TextID,
			pair.Position,
			pair.HalunderText,
			pair.GermanText,
			pair.MatchConfidence,
			pair.LinguisticNotes,
			pair.IsIdiom,
		)
	}

	results := tx.SendBatch(context, batch)
	for range pairs {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return dberr.Wrap(err, "insert_sentences")
		}
	}
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "close_sentence_batch")
	}

	return dberr.Wrap(tx.Commit(context), "commit_create_sentences")
}

func (repository *PostgresRepository) ListSentences(context context.Context) ([]*ReviewSentence, error) {
	sentence := schema.CorpusSentence
	text := schema.CorpusText

	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
		       t.%s, t.%s, t.%s, t.%s
		FROM %s s
		JOIN %s t ON t.%s = s.%s
		ORDER BY s.%s ASC;
	`,
		sentence.ID, sentence.TextID, sentence.Position,
		sentence.HalunderText, sentence.GermanText,
		sentence.MatchConfidence, sentence.LinguisticNotes, sentence.IsIdiom, sentence.CreatedAt,
		text.SourceTitle, text.SourceAuthor, text.SourcePage, text.AddedBy,
		sentence.Table,
		text.Table, text.ID, sentence.TextID,
		sentence.CreatedAt,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sentences")
	}
	defer rows.Close()

	var sentences []*ReviewSentence
	for rows.Next() {
		row := &ReviewSentence{}
		if err := rows.Scan(
			&row.ID, &row.TextID, &row.Position,
			&row.HalunderText, &row.GermanText,
			&row.MatchConfidence, &row.LinguisticNotes, &row.IsIdiom, &row.CreatedAt,
			&row.SourceTitle, &row.SourceAuthor, &row.SourcePage, &row.AddedBy,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_sentence")
		}
		sentences = append(sentences, row)
	}

	return sentences, nil
}

func (repository *PostgresRepository) UpdateSentence(context context.Context, id string, update SentenceUpdate) (*SentencePair, error) {
	sentence := schema.CorpusSentence

	assignments := []string{}
	arguments := []interface{}{id}

	appendAssignment := func(column string, value interface{}) {
		arguments = append(arguments, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(arguments)))
	}

	if update.HalunderText != nil {
		appendAssignment(sentence.HalunderText, *update.HalunderText)
	}
	if update.GermanText != nil {
		appendAssignment(sentence.GermanText, *update.GermanText)
	}
	if update.MatchConfidence != nil {
		appendAssignment(sentence.MatchConfidence, *update.MatchConfidence)
	}
	if update.LinguisticNotes != nil {
		appendAssignment(sentence.LinguisticNotes, *update.LinguisticNotes)
	}
	if update.IsIdiom != nil {
		appendAssignment(sentence.IsIdiom, *update.IsIdiom)
	}

	if len(assignments) == 0 {
		return repository.findSentence(context, id)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE %s = $1
		RETURNING %s;
	`,
		sentence.Table,
		strings.Join(assignments, ", "),
		sentence.ID,
		strings.Join(sentence.Columns(), ", "),
	)

	pair := &SentencePair{}
	err := repository.db.QueryRow(context, query, arguments...).Scan(
		&pair.ID, &pair.TextID, &pair.Position,
		&pair.HalunderText, &pair.GermanText,
		&pair.MatchConfidence, &pair.LinguisticNotes, &pair.IsIdiom, &pair.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_sentence")
	}

	return pair, nil
}

func (repository *PostgresRepository) findSentence(context context.Context, id string) (*SentencePair, error) {
	sentence := schema.CorpusSentence

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1;
	`,
		strings.Join(sentence.Columns(), ", "),
		sentence.Table,
		sentence.ID,
	)

	pair := &SentencePair{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&pair.ID, &pair.TextID, &pair.Position,
		&pair.HalunderText, &pair.GermanText,
		&pair.MatchConfidence, &pair.LinguisticNotes, &pair.IsIdiom, &pair.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_sentence")
	}

	return pair, nil
}

func (repository *PostgresRepository) DeleteSentence(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1;`,
		schema.CorpusSentence.Table,
		schema.CorpusSentence.ID,
	)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_sentence")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_sentence")
	}

	return nil
}

func (repository *PostgresRepository) ListParallelSentences(context context.Context) ([]*SentencePair, error) {
	sentence := schema.CorpusSentence

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s IS NOT NULL AND %s IS NOT NULL
		ORDER BY %s ASC;
	`,
		strings.Join(sentence.Columns(), ", "),
		sentence.Table,
		sentence.HalunderText,
		sentence.GermanText,
		sentence.CreatedAt,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_parallel_sentences")
	}
	defer rows.Close()

	var pairs []*SentencePair
	for rows.Next() {
		pair := &SentencePair{}
		if err := rows.Scan(
			&pair.ID, &pair.TextID, &pair.Position,
			&pair.HalunderText, &pair.GermanText,
			&pair.MatchConfidence, &pair.LinguisticNotes, &pair.IsIdiom, &pair.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_parallel_sentence")
		}
		pairs = append(pairs, pair)
	}

	return pairs, nil
}

// # Translation Aids

func (repository *PostgresRepository) CreateAids(context context.Context, aids []*TranslationAid) error {
	if len(aids) == 0 {
		return nil
	}

	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_aids")
	}
	defer func() { _ = tx.Rollback(context) }()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5);
	`,
		schema.CorpusTranslationAid.Table,
		schema.CorpusTranslationAid.ID,
		schema.CorpusTranslationAid.TextID,
		schema.CorpusTranslationAid.HalunderTerm,
		schema.CorpusTranslationAid.GermanTranslation,
		schema.CorpusTranslationAid.Notes,
	)

	batch := &pgx.Batch{}
	for _, aid := range aids {
		batch.Queue(query, aid.ID, aid.TextID, aid.HalunderTerm, aid.GermanTranslation, aid.Notes)
	}

	results := tx.SendBatch(context, batch)
	for range aids {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return dberr.Wrap(err, "insert_aids")
		}
	}
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "close_aid_batch")
	}

	return dberr.Wrap(tx.Commit(context), "commit_create_aids")
}

// # Contributors

func (repository *PostgresRepository) ListContributors(context context.Context) ([]*Contributor, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.CorpusContributor.ID,
		schema.CorpusContributor.Name,
		schema.CorpusContributor.CreatedAt,
		schema.CorpusContributor.Table,
		schema.CorpusContributor.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_contributors")
	}
	defer rows.Close()

	var contributors []*Contributor
	for rows.Next() {
		contributor := &Contributor{}
		if err := rows.Scan(&contributor.ID, &contributor.Name, &contributor.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_contributor")
		}
		contributors = append(contributors, contributor)
	}

	return contributors, nil
}

// # Status

func (repository *PostgresRepository) Stats(context context.Context) (*Stats, error) {
	sentence := schema.CorpusSentence

	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s WHERE %s IS NOT NULL AND %s IS NOT NULL),
			(SELECT COUNT(*) FROM %s);
	`,
		schema.CorpusText.Table,
		sentence.Table,
		sentence.Table, sentence.HalunderText, sentence.GermanText,
		schema.CorpusTranslationAid.Table,
	)

	stats := &Stats{}
	err := repository.db.QueryRow(context, query).Scan(
		&stats.TextCount,
		&stats.SentenceCount,
		&stats.ParallelCount,
		&stats.AidCount,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "corpus_stats")
	}

	return stats, nil
}
