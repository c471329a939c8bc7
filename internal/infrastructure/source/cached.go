package source

import (
	"context"
	"sync"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
	"github.com/kirillkom/legal-classification-browser/internal/core/ports"
)

// Cached loads from the wrapped source once and returns the same table, or
// the same error, on every later call.
type Cached struct {
	next ports.TableSource

	once  sync.Once
	table *domain.Table
	err   error
}

func NewCached(next ports.TableSource) *Cached {
	return &Cached{next: next}
}

func (c *Cached) Load(ctx context.Context) (*domain.Table, error) {
	c.once.Do(func() {
		c.table, c.err = c.next.Load(ctx)
	})
	return c.table, c.err
}
