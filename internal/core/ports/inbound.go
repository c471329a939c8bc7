package ports

import (
	"context"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

// Browser is the inbound contract for filtering and presenting the base table.
type Browser interface {
	Browse(ctx context.Context, filter domain.Filter) (*domain.BrowseResult, error)
	View(ctx context.Context, filter domain.Filter) (domain.View, error)
	Subjects() []string
	Distribution() []domain.SubjectCount
	Summary() domain.Summary
	Schema() domain.Schema
}

// Exporter is the inbound contract for downloads of the filtered view.
type Exporter interface {
	Export(ctx context.Context, filter domain.Filter, format domain.ExportFormat) (*domain.ExportPayload, error)
}
