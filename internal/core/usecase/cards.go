package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

// RecordLabel builds the collapsed label of a record: filename and subject,
// plus the rounded confidence when the schema carries scores.
func RecordLabel(rec domain.Record, rich bool) string {
	parts := make([]string, 0, 2)
	if rec.Filename != "" {
		parts = append(parts, rec.Filename)
	}
	if rec.Subject != "" {
		parts = append(parts, rec.Subject)
	}
	label := strings.Join(parts, " — ")
	if rich && rec.Confidence != nil {
		label += fmt.Sprintf(" (%d%%)", int(math.Round(*rec.Confidence)))
	}
	return strings.TrimSpace(label)
}

func NewRecordCard(rec domain.Record, rich bool) domain.RecordCard {
	card := domain.RecordCard{
		Label:    RecordLabel(rec, rich),
		Filename: rec.Filename,
		Subject:  rec.Subject,
		Text:     rec.Text,
	}
	if rich {
		card.Confidence = rec.Confidence
		card.TopScore = rec.TopScore
		card.SecondScore = rec.SecondScore
		card.Keywords = rec.Keywords
		card.Explanation = rec.Explanation
	}
	return card
}

func NewRecordCards(view domain.View, rich bool) []domain.RecordCard {
	cards := make([]domain.RecordCard, 0, len(view.Records))
	for _, rec := range view.Records {
		cards = append(cards, NewRecordCard(rec, rich))
	}
	return cards
}
