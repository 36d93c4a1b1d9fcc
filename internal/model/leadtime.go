package model

import (
	"fmt"
	"strings"
	"time"
)

// LeadTimeUnit is the calendar step used by the lead time calculator.
type LeadTimeUnit string

const (
	LeadDays   LeadTimeUnit = "days"
	LeadWeeks  LeadTimeUnit = "weeks"
	LeadMonths LeadTimeUnit = "months"
	LeadYears  LeadTimeUnit = "years"
)

// ParseLeadTimeUnit accepts singular or plural unit names.
func ParseLeadTimeUnit(s string) (LeadTimeUnit, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "day":
		return LeadDays, nil
	case "week":
		return LeadWeeks, nil
	case "month":
		return LeadMonths, nil
	case "year":
		return LeadYears, nil
	default:
		return "", &ValidationError{Field: "unit", Message: fmt.Sprintf("unknown lead time unit %q", s)}
	}
}

// AddLeadTime returns the delivery date n units after start. Month and year
// steps follow time.AddDate normalization (Jan 31 + 1 month is Mar 2 or 3).
func AddLeadTime(start time.Time, n int, unit LeadTimeUnit) (time.Time, error) {
	if n < 0 {
		return time.Time{}, &ValidationError{Field: "amount", Message: "cannot be negative"}
	}
	switch unit {
	case LeadDays:
		return start.AddDate(0, 0, n), nil
	case LeadWeeks:
		return start.AddDate(0, 0, 7*n), nil
	case LeadMonths:
		return start.AddDate(0, n, 0), nil
	case LeadYears:
		return start.AddDate(n, 0, 0), nil
	default:
		return time.Time{}, &ValidationError{Field: "unit", Message: fmt.Sprintf("unknown lead time unit %q", unit)}
	}
}
