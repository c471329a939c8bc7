package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
	"github.com/kirillkom/legal-classification-browser/internal/infrastructure/resilience"
)

type flakySource struct {
	failures int
	failWith error
	calls    int
}

func (s *flakySource) Load(context.Context) (*domain.Table, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, s.failWith
	}
	return &domain.Table{Columns: []string{"filename"}}, nil
}

func testExecutor() *resilience.Executor {
	return resilience.NewExecutor(resilience.Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
	})
}

func TestRetryingRecoversFromUnavailableSource(t *testing.T) {
	next := &flakySource{
		failures: 2,
		failWith: domain.WrapError(domain.ErrSourceUnavailable, "query", errors.New("connection refused")),
	}

	table, err := NewRetrying(next, testExecutor(), "postgres").Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table == nil || next.calls != 3 {
		t.Fatalf("expected table after 3 calls, got %d calls", next.calls)
	}
}

func TestRetryingDoesNotRetrySchemaMismatch(t *testing.T) {
	next := &flakySource{
		failures: 5,
		failWith: domain.WrapError(domain.ErrSchemaMismatch, "build table", errors.New("missing subject")),
	}

	_, err := NewRetrying(next, testExecutor(), "postgres").Load(context.Background())
	if !errors.Is(err, domain.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if next.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", next.calls)
	}
}
