package domain

type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

// ConfidenceBand is one bar of the confidence histogram. Upper is inclusive.
type ConfidenceBand struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type Summary struct {
	Total            int              `json:"total"`
	DistinctSubjects int              `json:"distinct_subjects"`
	MeanConfidence   *float64         `json:"mean_confidence,omitempty"`
	Histogram        []ConfidenceBand `json:"histogram,omitempty"`
}

// RecordCard is the rendered form of a record: a label shown collapsed and
// the detail fields shown on expansion.
type RecordCard struct {
	Label       string   `json:"label"`
	Filename    string   `json:"filename"`
	Subject     string   `json:"subject,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
	Text        string   `json:"text,omitempty"`
	TopScore    *float64 `json:"top_score,omitempty"`
	SecondScore *float64 `json:"second_score,omitempty"`
	Keywords    string   `json:"keywords,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// BrowseResult is everything a page render needs for one filter configuration.
type BrowseResult struct {
	Filter       Filter         `json:"filter"`
	Shown        int            `json:"shown"`
	Total        int            `json:"total"`
	Cards        []RecordCard   `json:"records"`
	Subjects     []string       `json:"subjects"`
	Distribution []SubjectCount `json:"distribution"`
	Summary      Summary        `json:"summary"`
	Rich         bool           `json:"rich"`
}
