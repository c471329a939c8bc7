package domain

import (
	"fmt"
	"strings"
)

// AllSubjects disables the subject predicate.
const AllSubjects = "all"

const (
	MinConfidenceFloor   = 0.0
	MinConfidenceCeiling = 100.0
)

type Filter struct {
	Subject       string  `json:"subject"`
	Keyword       string  `json:"keyword"`
	MinConfidence float64 `json:"min_confidence"`
}

func DefaultFilter() Filter {
	return Filter{Subject: AllSubjects}
}

func (f Filter) SubjectActive() bool {
	s := strings.TrimSpace(f.Subject)
	return s != "" && !strings.EqualFold(s, AllSubjects)
}

// KeywordActive reports whether the keyword predicate applies. Only the empty
// string disables it; whitespace is matched literally.
func (f Filter) KeywordActive() bool {
	return f.Keyword != ""
}

func (f Filter) ConfidenceActive() bool {
	return f.MinConfidence > MinConfidenceFloor
}

func (f Filter) Validate() error {
	if f.MinConfidence < MinConfidenceFloor || f.MinConfidence > MinConfidenceCeiling {
		return WrapError(ErrInvalidInput, "validate filter",
			fmt.Errorf("min_confidence %.2f outside [0,100]", f.MinConfidence))
	}
	return nil
}
