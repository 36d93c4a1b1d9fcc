package model

import (
	"testing"
	"time"
)

func TestAddLeadTime(t *testing.T) {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		n    int
		unit LeadTimeUnit
		want time.Time
	}{
		{10, LeadDays, time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC)},
		{2, LeadWeeks, time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC)},
		{1, LeadMonths, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)},
		{1, LeadYears, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{0, LeadDays, start},
	}
	for _, tt := range tests {
		got, err := AddLeadTime(start, tt.n, tt.unit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("%d %s: expected %s, got %s", tt.n, tt.unit, tt.want, got)
		}
	}
}

func TestAddLeadTimeInvalid(t *testing.T) {
	if _, err := AddLeadTime(time.Now(), -1, LeadDays); err == nil {
		t.Error("expected error for negative amount")
	}
	if _, err := AddLeadTime(time.Now(), 1, "fortnights"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestParseLeadTimeUnit(t *testing.T) {
	for in, want := range map[string]LeadTimeUnit{"day": LeadDays, "Weeks": LeadWeeks, "month": LeadMonths, "years": LeadYears} {
		got, err := ParseLeadTimeUnit(in)
		if err != nil || got != want {
			t.Errorf("ParseLeadTimeUnit(%q) = %s, %v", in, got, err)
		}
	}
}

func TestParseConsentLevel(t *testing.T) {
	if _, err := ParseConsentLevel("all"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseConsentLevel("some"); err == nil {
		t.Error("expected error for unknown level")
	}
	if !(Consent{Level: ConsentAll}).AllowsOptional() {
		t.Error("all should allow optional features")
	}
	if (Consent{Level: ConsentRequired}).AllowsOptional() {
		t.Error("required should not allow optional features")
	}
}
