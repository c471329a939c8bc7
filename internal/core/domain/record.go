package domain

// Record is one classified project. Empty strings and nil numbers stand for
// values absent in the source.
type Record struct {
	Position    int      `json:"position"`
	Filename    string   `json:"filename"`
	Subject     string   `json:"subject"`
	Text        string   `json:"text"`
	Confidence  *float64 `json:"confidence,omitempty"`
	TopScore    *float64 `json:"top_score,omitempty"`
	SecondScore *float64 `json:"second_score,omitempty"`
	Keywords    string   `json:"keywords,omitempty"`
	Explanation string   `json:"explanation,omitempty"`

	// Cells holds the raw source row aligned with Table.Columns.
	Cells []string `json:"-"`
}

// Table is the loaded base table. It is never modified after load.
type Table struct {
	Schema  Schema
	Columns []string
	Records []Record
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// View is a filtered projection of a base table in base-table order.
type View struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}

func (v View) Len() int {
	return len(v.Records)
}
