package source

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

func scoredSchema() domain.Schema {
	return domain.Schema{
		FilenameColumn:   "filename",
		SubjectColumn:    "predicted_subject",
		TextColumn:       "relevant_text_segment",
		ConfidenceColumn: "confidence_pct",
	}
}

func TestBuildTableMapsColumns(t *testing.T) {
	header := []string{"\ufefffilename", " predicted_subject ", "relevant_text_segment", "confidence_pct", "extra"}
	rows := [][]string{
		{"a.pdf", "Civil", " texto ", "72", "x"},
		{"b.pdf", "", "", "n/a"},
	}

	table, err := BuildTable(scoredSchema(), header, rows)
	if err != nil {
		t.Fatalf("BuildTable() error = %v", err)
	}
	wantColumns := []string{"filename", "predicted_subject", "relevant_text_segment", "confidence_pct", "extra"}
	if !reflect.DeepEqual(table.Columns, wantColumns) {
		t.Fatalf("unexpected columns %v", table.Columns)
	}

	first := table.Records[0]
	if first.Filename != "a.pdf" || first.Subject != "Civil" || first.Text != "texto" {
		t.Fatalf("unexpected first record %+v", first)
	}
	if first.Confidence == nil || *first.Confidence != 72 {
		t.Fatalf("expected confidence 72, got %v", first.Confidence)
	}
	if first.Cells[2] != " texto " {
		t.Fatalf("raw cells must be kept verbatim, got %q", first.Cells[2])
	}

	second := table.Records[1]
	if second.Confidence != nil {
		t.Fatalf("expected unparsable confidence to be missing, got %v", *second.Confidence)
	}
	if len(second.Cells) != 5 || second.Cells[4] != "" {
		t.Fatalf("expected short row padded, got %q", second.Cells)
	}
	if second.Position != 1 {
		t.Fatalf("expected position 1, got %d", second.Position)
	}
}

func TestBuildTableMissingColumn(t *testing.T) {
	_, err := BuildTable(scoredSchema(), []string{"filename", "relevant_text_segment"}, nil)
	if !domain.IsKind(err, domain.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestBuildTableRejectsLongRow(t *testing.T) {
	header := []string{"filename", "predicted_subject", "relevant_text_segment", "confidence_pct"}
	_, err := BuildTable(scoredSchema(), header, [][]string{{"a", "b", "c", "1", "surplus"}})
	if !domain.IsKind(err, domain.ErrSourceInvalid) {
		t.Fatalf("expected invalid source, got %v", err)
	}
}

func TestParseNumber(t *testing.T) {
	cases := map[string]*float64{
		"":      nil,
		"  ":    nil,
		"abc":   nil,
		"NaN":   nil,
		"inf":   nil,
		"72":    ptr(72),
		" 3.5 ": ptr(3.5),
	}
	for raw, want := range cases {
		got := ParseNumber(raw)
		if (got == nil) != (want == nil) || (got != nil && *got != *want) {
			t.Fatalf("ParseNumber(%q) = %v, want %v", raw, got, want)
		}
	}
}

func ptr(v float64) *float64 { return &v }

type countingSource struct {
	calls int
	err   error
}

func (s *countingSource) Load(context.Context) (*domain.Table, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Table{Columns: []string{"filename"}}, nil
}

func TestCachedLoadsOnce(t *testing.T) {
	next := &countingSource{}
	cached := NewCached(next)

	first, err := cached.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := cached.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first != second {
		t.Fatalf("expected the same table instance")
	}
	if next.calls != 1 {
		t.Fatalf("expected one load, got %d", next.calls)
	}
}

func TestCachedKeepsFailure(t *testing.T) {
	next := &countingSource{err: errors.New("missing file")}
	cached := NewCached(next)

	for i := 0; i < 3; i++ {
		if _, err := cached.Load(context.Background()); err == nil {
			t.Fatalf("expected error on call %d", i)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected failed load not to be retried, got %d calls", next.calls)
	}
}
