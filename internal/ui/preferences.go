package ui

import (
	"context"

	"fyne.io/fyne/v2"

	"github.com/piwi3910/MachCost/internal/store"
)

// PreferencesStore keeps material prices and consent in the fyne app
// preferences so the desktop app needs no data directory of its own.
type PreferencesStore struct {
	prefs fyne.Preferences
}

func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

// Get treats an empty preference as unset.
func (s *PreferencesStore) Get(_ context.Context, key string) (string, error) {
	v := s.prefs.String(key)
	if v == "" {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (s *PreferencesStore) Set(_ context.Context, key, value string) error {
	s.prefs.SetString(key, value)
	return nil
}

func (s *PreferencesStore) Delete(_ context.Context, key string) error {
	s.prefs.RemoveValue(key)
	return nil
}
