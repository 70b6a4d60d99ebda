package safety

import (
	"strings"
	"unicode/utf8"
)

const DefaultMaxInputLength = 500

const (
	ReasonEmpty      = "Input cannot be empty"
	ReasonTooLong    = "Input exceeds maximum length"
	ReasonSuspicious = "Input contains suspicious patterns"
)

var suspiciousPatterns = []string{"<script", "javascript:", "onerror=", "onclick="}

type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// InputError rejects a user message before any conversation state is touched.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

type InputValidator struct {
	maxLength int
}

func NewInputValidator(maxLength int) *InputValidator {
	if maxLength <= 0 {
		maxLength = DefaultMaxInputLength
	}
	return &InputValidator{maxLength: maxLength}
}

// Check screens a raw user message. Length is counted in characters.
func (v *InputValidator) Check(input string) ValidationResult {
	if strings.TrimSpace(input) == "" {
		return ValidationResult{Reason: ReasonEmpty}
	}
	if utf8.RuneCountInString(input) > v.maxLength {
		return ValidationResult{Reason: ReasonTooLong}
	}
	lower := strings.ToLower(input)
	for _, p := range suspiciousPatterns {
		if strings.Contains(lower, p) {
			return ValidationResult{Reason: ReasonSuspicious}
		}
	}
	return ValidationResult{Valid: true}
}

// Validate is Check in error form; a rejection is an *InputError.
func (v *InputValidator) Validate(input string) error {
	if res := v.Check(input); !res.Valid {
		return &InputError{Reason: res.Reason}
	}
	return nil
}
