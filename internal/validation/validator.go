package validation

import (
	"strings"

	"quiz-forge/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuizRequest reports the first required field that is missing.
// Subject is checked before unit; blank values count as missing.
func (v *Validator) ValidateQuizRequest(req domain.QuizRequest) *domain.DomainError {
	if isBlank(req.Subject) {
		return domain.NewMissingFieldError("subject")
	}
	if isBlank(req.Unit) {
		return domain.NewMissingFieldError("unit")
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
