package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

// Encoder writes a view as UTF-8 CSV prefixed with a byte order mark, the
// layout spreadsheet tools expect for non-ASCII text.
type Encoder struct {
	comma rune
}

func New() *Encoder {
	return &Encoder{comma: ','}
}

func (e *Encoder) Format() domain.ExportFormat {
	return domain.FormatCSV
}

func (e *Encoder) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (e *Encoder) Encode(w io.Writer, view domain.View) error {
	bom := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	writer := csv.NewWriter(bom)
	writer.Comma = e.comma

	if err := writer.Write(view.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range view.Records {
		if err := writer.Write(alignCells(rec.Cells, len(view.Columns))); err != nil {
			return fmt.Errorf("write row %d: %w", rec.Position, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := bom.Close(); err != nil {
		return fmt.Errorf("flush encoder: %w", err)
	}
	return nil
}

func alignCells(cells []string, width int) []string {
	if len(cells) == width {
		return cells
	}
	out := make([]string, width)
	copy(out, cells)
	return out
}
