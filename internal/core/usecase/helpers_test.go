package usecase

import "github.com/kirillkom/legal-classification-browser/internal/core/domain"

func ptr(v float64) *float64 { return &v }

func basicSchema() domain.Schema {
	return domain.Schema{
		Variant:        "assigned",
		FilenameColumn: "filename",
		SubjectColumn:  "assigned_subject",
		TextColumn:     "relevant_text_segment",
	}
}

func richSchema() domain.Schema {
	s := basicSchema()
	s.Variant = "explained"
	s.SubjectColumn = "predicted_subject"
	s.ConfidenceColumn = "confidence_pct"
	return s
}

func newTable(schema domain.Schema, records ...domain.Record) *domain.Table {
	for i := range records {
		records[i].Position = i
		records[i].Cells = []string{records[i].Filename, records[i].Subject, records[i].Text}
	}
	return &domain.Table{
		Schema:  schema,
		Columns: []string{schema.FilenameColumn, schema.SubjectColumn, schema.TextColumn},
		Records: records,
	}
}

func positions(view domain.View) []int {
	out := make([]int, 0, len(view.Records))
	for _, rec := range view.Records {
		out = append(out, rec.Position)
	}
	return out
}
