package schema

// CorpusSentenceTable represents the 'corpus.sentence' table
type CorpusSentenceTable struct {
	Table           string
	ID              string
	TextID          string
	Position        string
	HalunderText    string
	GermanText      string
	MatchConfidence string
	LinguisticNotes string
	IsIdiom         string
	CreatedAt       string
}

// CorpusSentence is the schema definition for corpus.sentence
var CorpusSentence = CorpusSentenceTable{
	Table:           "corpus.sentence",
	ID:              "id",
	TextID:          "textid",
	Position:        "position",
	HalunderText:    "halundertext",
	GermanText:      "germantext",
	MatchConfidence: "matchconfidence",
	LinguisticNotes: "linguisticnotes",
	IsIdiom:         "isidiom",
	CreatedAt:       "createdat",
}

func (t CorpusSentenceTable) Columns() []string {
	return []string{
		t.ID, t.TextID, t.Position,
		t.HalunderText, t.GermanText,
		t.MatchConfidence, t.LinguisticNotes, t.IsIdiom, t.CreatedAt,
	}
}
