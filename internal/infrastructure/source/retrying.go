package source

import (
	"context"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
	"github.com/kirillkom/legal-classification-browser/internal/core/ports"
	"github.com/kirillkom/legal-classification-browser/internal/infrastructure/resilience"
)

// Retrying retries loads that failed because the backing store was
// unreachable. Missing columns or malformed data fail on the first attempt.
type Retrying struct {
	next     ports.TableSource
	executor *resilience.Executor
	name     string
}

func NewRetrying(next ports.TableSource, executor *resilience.Executor, name string) *Retrying {
	return &Retrying{next: next, executor: executor, name: name}
}

func (r *Retrying) Load(ctx context.Context) (*domain.Table, error) {
	var table *domain.Table
	err := r.executor.Execute(ctx, "load "+r.name, func(ctx context.Context) error {
		loaded, err := r.next.Load(ctx)
		if err != nil {
			return err
		}
		table = loaded
		return nil
	}, isTransient)
	if err != nil {
		if resilience.IsCircuitOpen(err) {
			return nil, domain.WrapError(domain.ErrSourceUnavailable, "load "+r.name, err)
		}
		return nil, err
	}
	return table, nil
}

func isTransient(err error) bool {
	return domain.IsKind(err, domain.ErrSourceUnavailable)
}
