package ports

import (
	"context"
	"io"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

// TableSource loads the base table.
type TableSource interface {
	Load(ctx context.Context) (*domain.Table, error)
}

// ObjectStorage reads source files and stores exported payloads.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// TableEncoder serializes a view into a downloadable format.
type TableEncoder interface {
	Format() domain.ExportFormat
	ContentType() string
	Encode(w io.Writer, view domain.View) error
}
