package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
	"github.com/kirillkom/legal-classification-browser/internal/core/ports"
)

type ExportUseCase struct {
	table    *domain.Table
	encoders map[domain.ExportFormat]ports.TableEncoder
}

func NewExportUseCase(table *domain.Table, encoders ...ports.TableEncoder) *ExportUseCase {
	byFormat := make(map[domain.ExportFormat]ports.TableEncoder, len(encoders))
	for _, enc := range encoders {
		byFormat[enc.Format()] = enc
	}
	return &ExportUseCase{
		table:    table,
		encoders: byFormat,
	}
}

// Export serializes the records selected by filter. The same table and
// filter always produce the same bytes.
func (uc *ExportUseCase) Export(
	ctx context.Context,
	filter domain.Filter,
	format domain.ExportFormat,
) (*domain.ExportPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	encoder, ok := uc.encoders[format]
	if !ok {
		return nil, domain.WrapError(domain.ErrInvalidInput, "export", fmt.Errorf("unsupported format %q", format))
	}

	view := ApplyFilter(uc.table, filter)
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, view); err != nil {
		return nil, domain.WrapError(domain.ErrExportFailed, "encode "+string(format), err)
	}

	return &domain.ExportPayload{
		Filename:    domain.ExportBaseName + "." + string(format),
		ContentType: encoder.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}
