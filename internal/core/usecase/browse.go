package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

// BrowseUseCase answers filter and presentation queries over one immutable
// base table. Base-table aggregates are computed once at construction.
type BrowseUseCase struct {
	table *domain.Table

	subjects     []string
	distribution []domain.SubjectCount
	summary      domain.Summary
}

func NewBrowseUseCase(table *domain.Table) *BrowseUseCase {
	return &BrowseUseCase{
		table:        table,
		subjects:     SubjectOptions(table),
		distribution: SubjectDistribution(table),
		summary:      Summarize(table),
	}
}

func (uc *BrowseUseCase) View(ctx context.Context, filter domain.Filter) (domain.View, error) {
	if err := ctx.Err(); err != nil {
		return domain.View{}, fmt.Errorf("view: %w", err)
	}
	if err := filter.Validate(); err != nil {
		return domain.View{}, err
	}
	return ApplyFilter(uc.table, filter), nil
}

func (uc *BrowseUseCase) Browse(ctx context.Context, filter domain.Filter) (*domain.BrowseResult, error) {
	view, err := uc.View(ctx, filter)
	if err != nil {
		return nil, err
	}

	rich := uc.table != nil && uc.table.Schema.Rich()
	return &domain.BrowseResult{
		Filter:       filter,
		Shown:        view.Len(),
		Total:        view.Total,
		Cards:        NewRecordCards(view, rich),
		Subjects:     uc.Subjects(),
		Distribution: uc.Distribution(),
		Summary:      uc.Summary(),
		Rich:         rich,
	}, nil
}

func (uc *BrowseUseCase) Subjects() []string {
	return slices.Clone(uc.subjects)
}

func (uc *BrowseUseCase) Distribution() []domain.SubjectCount {
	return slices.Clone(uc.distribution)
}

func (uc *BrowseUseCase) Summary() domain.Summary {
	out := uc.summary
	out.Histogram = slices.Clone(uc.summary.Histogram)
	return out
}

func (uc *BrowseUseCase) Schema() domain.Schema {
	if uc.table == nil {
		return domain.Schema{}
	}
	return uc.table.Schema
}
