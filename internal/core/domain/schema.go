package domain

import (
	"fmt"
	"strings"
)

// Schema maps the semantic fields of a record onto source columns.
// Optional columns are left empty when a dataset does not carry them.
type Schema struct {
	Variant     string `json:"variant"`
	SourceFile  string `json:"source_file"`
	Delimiter   rune   `json:"-"`
	Title       string `json:"title"`
	Description string `json:"-"`

	FilenameColumn string `json:"filename_column"`
	SubjectColumn  string `json:"subject_column"`
	TextColumn     string `json:"text_column"`

	ConfidenceColumn  string `json:"confidence_column,omitempty"`
	TopScoreColumn    string `json:"top_score_column,omitempty"`
	SecondScoreColumn string `json:"second_score_column,omitempty"`
	KeywordsColumn    string `json:"keywords_column,omitempty"`
	ExplanationColumn string `json:"explanation_column,omitempty"`
}

// Rich reports whether the dataset carries precomputed confidence scores.
func (s Schema) Rich() bool {
	return s.ConfidenceColumn != ""
}

// ReferencedColumns lists every column the filter and render logic reads.
func (s Schema) ReferencedColumns() []string {
	cols := []string{s.FilenameColumn, s.SubjectColumn, s.TextColumn}
	for _, optional := range []string{
		s.ConfidenceColumn,
		s.TopScoreColumn,
		s.SecondScoreColumn,
		s.KeywordsColumn,
		s.ExplanationColumn,
	} {
		if optional != "" {
			cols = append(cols, optional)
		}
	}
	return cols
}

func (s Schema) Validate() error {
	var missing []string
	if strings.TrimSpace(s.FilenameColumn) == "" {
		missing = append(missing, "filename_column")
	}
	if strings.TrimSpace(s.SubjectColumn) == "" {
		missing = append(missing, "subject_column")
	}
	if strings.TrimSpace(s.TextColumn) == "" {
		missing = append(missing, "text_column")
	}
	if len(missing) > 0 {
		return WrapError(ErrInvalidInput, "validate schema", fmt.Errorf("missing %s", strings.Join(missing, ", ")))
	}
	return nil
}
