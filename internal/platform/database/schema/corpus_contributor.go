package schema

// CorpusContributorTable represents the 'corpus.contributor' table
type CorpusContributorTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
}

// CorpusContributor is the schema definition for corpus.contributor
var CorpusContributor = CorpusContributorTable{
	Table:     "corpus.contributor",
	ID:        "id",
	Name:      "name",
	CreatedAt: "createdat",
}

func (t CorpusContributorTable) Columns() []string { return []string{t.ID, t.Name, t.CreatedAt} }
