package schema

// CorpusTextTable represents the 'corpus.text' table
type CorpusTextTable struct {
	Table           string
	ID              string
	Content         string
	Language        string
	TextType        string
	SourceTitle     string
	SourceAuthor    string
	SourcePage      string
	SourceDate      string
	Proofread       string
	ProofreadBy     string
	AddedBy         string
	TranslationOf   string
	MatchConfidence string
	CreatedAt       string
}

// CorpusText is the schema definition for corpus.text
var CorpusText = CorpusTextTable{
	Table:           "corpus.text",
	ID:              "id",
	Content:         "content",
	Language:        "language",
	TextType:        "texttype",
	SourceTitle:     "sourcetitle",
	SourceAuthor:    "sourceauthor",
	SourcePage:      "sourcepage",
	SourceDate:      "sourcedate",
	Proofread:       "proofread",
	ProofreadBy:     "proofreadby",
	AddedBy:         "addedby",
	TranslationOf:   "translationof",
	MatchConfidence: "matchconfidence",
	CreatedAt:       "createdat",
}

func (t CorpusTextTable) Columns() []string {
	return []string{
		t.ID, t.Content, t.Language, t.TextType,
		t.SourceTitle, t.SourceAuthor, t.SourcePage, t.SourceDate,
		t.Proofread, t.ProofreadBy, t.AddedBy,
		t.TranslationOf, t.MatchConfidence, t.CreatedAt,
	}
}
