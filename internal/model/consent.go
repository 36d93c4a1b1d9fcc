package model

import (
	"fmt"
	"time"
)

// ConsentLevel is the cookie/storage choice made by the user.
type ConsentLevel string

const (
	ConsentAll      ConsentLevel = "all"
	ConsentRequired ConsentLevel = "required"
)

// ParseConsentLevel validates a stored or submitted level.
func ParseConsentLevel(s string) (ConsentLevel, error) {
	switch ConsentLevel(s) {
	case ConsentAll, ConsentRequired:
		return ConsentLevel(s), nil
	default:
		return "", &ValidationError{Field: "consent", Message: fmt.Sprintf("must be %q or %q", ConsentAll, ConsentRequired)}
	}
}

// Consent records one consent decision.
type Consent struct {
	Level     ConsentLevel `json:"level"`
	Timestamp time.Time    `json:"timestamp"`
}

// AllowsOptional reports whether optional features such as ads may load.
func (c Consent) AllowsOptional() bool {
	return c.Level == ConsentAll
}
