package xlsxexport

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

func TestEncodeWritesSheet(t *testing.T) {
	view := domain.View{
		Columns: []string{"filename", "assigned_subject", "relevant_text_segment"},
		Records: []domain.Record{
			{Position: 0, Cells: []string{"p1.pdf", "Contractual", "Contrato de obra"}},
			{Position: 2, Cells: []string{"p3.pdf", "Contractual", "Cláusula penal"}},
		},
	}

	var buf bytes.Buffer
	if err := New().Encode(&buf, view); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][2] != "relevant_text_segment" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[2][2] != "Cláusula penal" {
		t.Fatalf("unexpected row %v", rows[2])
	}
}

func TestEncoderMetadata(t *testing.T) {
	enc := New()
	if enc.Format() != domain.FormatXLSX {
		t.Fatalf("unexpected format %q", enc.Format())
	}
	if enc.ContentType() == "" {
		t.Fatalf("expected content type")
	}
}
