package usecase

import (
	"sort"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

var confidenceBands = []domain.ConfidenceBand{
	{Label: "Baja (0-50%)", Lower: 0, Upper: 50},
	{Label: "Media (51-70%)", Lower: 51, Upper: 70},
	{Label: "Alta (71-85%)", Lower: 71, Upper: 85},
	{Label: "Muy alta (86-100%)", Lower: 86, Upper: 100},
}

// SubjectDistribution counts records per subject over the whole table,
// most frequent first. Records without a subject are not counted.
func SubjectDistribution(table *domain.Table) []domain.SubjectCount {
	if table == nil {
		return nil
	}
	counts := make(map[string]int)
	for _, rec := range table.Records {
		if rec.Subject == "" {
			continue
		}
		counts[rec.Subject]++
	}

	out := make([]domain.SubjectCount, 0, len(counts))
	for subject, count := range counts {
		out = append(out, domain.SubjectCount{Subject: subject, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Subject < out[j].Subject
	})
	return out
}

// SubjectOptions returns the sorted distinct subjects of the table.
func SubjectOptions(table *domain.Table) []string {
	dist := SubjectDistribution(table)
	out := make([]string, 0, len(dist))
	for _, item := range dist {
		out = append(out, item.Subject)
	}
	sort.Strings(out)
	return out
}

// Summarize computes the scalar widgets and the confidence histogram.
// Confidence figures are only present for schemas carrying scores.
func Summarize(table *domain.Table) domain.Summary {
	if table == nil {
		return domain.Summary{}
	}
	summary := domain.Summary{
		Total:            len(table.Records),
		DistinctSubjects: len(SubjectDistribution(table)),
	}
	if !table.Schema.Rich() {
		return summary
	}

	bands := ConfidenceBands()
	var (
		sum float64
		n   int
	)
	for _, rec := range table.Records {
		if rec.Confidence == nil {
			continue
		}
		v := *rec.Confidence
		sum += v
		n++
		bands[ConfidenceBandIndex(v)].Count++
	}
	if n > 0 {
		mean := sum / float64(n)
		summary.MeanConfidence = &mean
	}
	summary.Histogram = bands
	return summary
}

// ConfidenceBands returns a fresh copy of the histogram bands with zero counts.
func ConfidenceBands() []domain.ConfidenceBand {
	out := make([]domain.ConfidenceBand, len(confidenceBands))
	copy(out, confidenceBands)
	return out
}

// ConfidenceBandIndex places v in the first band whose upper bound is >= v.
// Values above 100 fall in the last band.
func ConfidenceBandIndex(v float64) int {
	for i, band := range confidenceBands {
		if v <= band.Upper {
			return i
		}
	}
	return len(confidenceBands) - 1
}
