package usecase

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

// ApplyFilter returns the base records matching every active predicate of
// filter, in base-table order. The base table is not modified.
func ApplyFilter(base *domain.Table, filter domain.Filter) domain.View {
	if base == nil {
		return domain.View{}
	}

	subjectActive := filter.SubjectActive()
	subject := strings.TrimSpace(filter.Subject)
	keyword := newKeywordMatcher(filter.Keyword)
	confidenceActive := filter.ConfidenceActive() && base.Schema.Rich()

	records := make([]domain.Record, 0, len(base.Records))
	for _, rec := range base.Records {
		if subjectActive && rec.Subject != subject {
			continue
		}
		if keyword != nil && !keyword.match(rec.Text) {
			continue
		}
		if confidenceActive && !meetsConfidence(rec.Confidence, filter.MinConfidence) {
			continue
		}
		records = append(records, rec)
	}

	return domain.View{
		Columns: base.Columns,
		Records: records,
		Total:   len(base.Records),
	}
}

func meetsConfidence(value *float64, threshold float64) bool {
	return value != nil && *value >= threshold
}

type keywordMatcher struct {
	needle string
}

func newKeywordMatcher(keyword string) *keywordMatcher {
	if keyword == "" {
		return nil
	}
	return &keywordMatcher{needle: foldText(keyword)}
}

func (m *keywordMatcher) match(text string) bool {
	if text == "" {
		return false
	}
	return strings.Contains(foldText(text), m.needle)
}

// foldText normalizes accents to composed form and applies Unicode case folding.
// A Caser keeps state between calls, so one is built per invocation.
func foldText(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
