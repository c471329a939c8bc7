package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

// BuildTable maps a header and raw rows onto records of schema. Every column
// the schema references must be present. Short rows are padded with empty
// cells; rows longer than the header are rejected.
func BuildTable(schema domain.Schema, header []string, rows [][]string) (*domain.Table, error) {
	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, cell := range header {
		columns[i] = cleanHeader(cell)
		if _, dup := index[columns[i]]; !dup {
			index[columns[i]] = i
		}
	}

	var missing []string
	for _, col := range schema.ReferencedColumns() {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, domain.WrapError(domain.ErrSchemaMismatch, "build table",
			fmt.Errorf("missing columns: %s", strings.Join(missing, ", ")))
	}

	field := func(cells []string, column string) string {
		if column == "" {
			return ""
		}
		return strings.TrimSpace(cells[index[column]])
	}
	number := func(cells []string, column string) *float64 {
		if column == "" {
			return nil
		}
		return ParseNumber(cells[index[column]])
	}

	records := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		if len(row) > len(columns) {
			return nil, domain.WrapError(domain.ErrSourceInvalid, "build table",
				fmt.Errorf("row %d has %d fields, header has %d", i+1, len(row), len(columns)))
		}
		cells := make([]string, len(columns))
		copy(cells, row)

		records = append(records, domain.Record{
			Position:    i,
			Filename:    field(cells, schema.FilenameColumn),
			Subject:     field(cells, schema.SubjectColumn),
			Text:        field(cells, schema.TextColumn),
			Confidence:  number(cells, schema.ConfidenceColumn),
			TopScore:    number(cells, schema.TopScoreColumn),
			SecondScore: number(cells, schema.SecondScoreColumn),
			Keywords:    field(cells, schema.KeywordsColumn),
			Explanation: field(cells, schema.ExplanationColumn),
			Cells:       cells,
		})
	}

	return &domain.Table{
		Schema:  schema,
		Columns: columns,
		Records: records,
	}, nil
}

// ParseNumber coerces a cell to a number. Empty, unparsable and non-finite
// values are treated as missing.
func ParseNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func cleanHeader(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(v)
}
