package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/model"
	"github.com/piwi3910/MachCost/internal/store"
)

// Store keys for the consent decision.
const (
	ConsentKey          = "cookie-consent"
	ConsentTimestampKey = "cookie-consent-timestamp"
)

// SaveConsent records the user's choice with the given time.
func SaveConsent(ctx context.Context, s store.Store, level model.ConsentLevel, at time.Time) (model.Consent, error) {
	if _, err := model.ParseConsentLevel(string(level)); err != nil {
		return model.Consent{}, err
	}
	c := model.Consent{Level: level, Timestamp: at.UTC().Truncate(time.Second)}
	if err := s.Set(ctx, ConsentKey, string(level)); err != nil {
		return model.Consent{}, fmt.Errorf("failed to save consent: %w", err)
	}
	if err := s.Set(ctx, ConsentTimestampKey, c.Timestamp.Format(time.RFC3339)); err != nil {
		return model.Consent{}, fmt.Errorf("failed to save consent timestamp: %w", err)
	}
	return c, nil
}

// LoadConsent returns the saved decision. ok is false when the user has not
// decided yet, which includes an unrecognised stored value.
func LoadConsent(ctx context.Context, s store.Store) (c model.Consent, ok bool, err error) {
	raw, err := s.Get(ctx, ConsentKey)
	if errors.Is(err, store.ErrNotFound) {
		return model.Consent{}, false, nil
	}
	if err != nil {
		return model.Consent{}, false, fmt.Errorf("failed to read consent: %w", err)
	}
	level, err := model.ParseConsentLevel(raw)
	if err != nil {
		zap.S().Named("project").Debugw("ignoring stored consent", "value", raw)
		return model.Consent{}, false, nil
	}
	c.Level = level

	ts, err := s.Get(ctx, ConsentTimestampKey)
	if err == nil {
		if parsed, perr := time.Parse(time.RFC3339, ts); perr == nil {
			c.Timestamp = parsed
		}
	}
	return c, true, nil
}
