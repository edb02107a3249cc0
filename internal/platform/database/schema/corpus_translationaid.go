package schema

// CorpusTranslationAidTable represents the 'corpus.translationaid' table
type CorpusTranslationAidTable struct {
	Table             string
	ID                string
	TextID            string
	HalunderTerm      string
	GermanTranslation string
	Notes             string
	CreatedAt         string
}

// CorpusTranslationAid is the schema definition for corpus.translationaid
var CorpusTranslationAid = CorpusTranslationAidTable{
	Table:             "corpus.translationaid",
	ID:                "id",
	TextID:            "textid",
	HalunderTerm:      "halunderterm",
	GermanTranslation: "germantranslation",
	Notes:             "notes",
	CreatedAt:         "createdat",
}

func (t CorpusTranslationAidTable) Columns() []string {
	return []string{t.ID, t.TextID, t.HalunderTerm, t.GermanTranslation, t.Notes, t.CreatedAt}
}
