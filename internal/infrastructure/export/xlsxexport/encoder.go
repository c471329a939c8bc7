package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

const SheetName = "proyectos"

// Encoder writes a view as a single-sheet workbook. Cells are written as
// text so values round-trip unchanged.
type Encoder struct{}

func New() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Format() domain.ExportFormat {
	return domain.FormatXLSX
}

func (e *Encoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *Encoder) Encode(w io.Writer, view domain.View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	stream, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	if err := stream.SetRow("A1", toRow(view.Columns, len(view.Columns))); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range view.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := stream.SetRow(cell, toRow(rec.Cells, len(view.Columns))); err != nil {
			return fmt.Errorf("write row %d: %w", rec.Position, err)
		}
	}
	if err := stream.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func toRow(cells []string, width int) []any {
	row := make([]any, width)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
