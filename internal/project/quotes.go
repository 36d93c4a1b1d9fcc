package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/MachCost/internal/model"
)

// DefaultQuotesPath returns ~/.machcost/quotes.json.
func DefaultQuotesPath() string {
	return filepath.Join(DefaultConfigDir(), "quotes.json")
}

// SaveQuotes writes the quote store to a JSON file.
func SaveQuotes(path string, store model.QuoteStore) error {
	defer lockFile(path)()
	return saveQuotes(path, store)
}

func saveQuotes(path string, store model.QuoteStore) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// LoadQuotes reads a quote store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadQuotes(path string) (model.QuoteStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewQuoteStore(), nil
		}
		return model.QuoteStore{}, err
	}
	var store model.QuoteStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.QuoteStore{}, err
	}
	if store.Quotes == nil {
		store.Quotes = []model.Quote{}
	}
	return store, nil
}

// AppendQuote loads the store at path, adds q, trims it to max entries
// (0 keeps everything) and saves it back. Concurrent appends to the same
// path are serialised.
func AppendQuote(path string, q model.Quote, max int) error {
	defer lockFile(path)()
	store, err := LoadQuotes(path)
	if err != nil {
		return err
	}
	store.Add(q)
	if max > 0 {
		store.Trim(max)
	}
	return saveQuotes(path, store)
}
