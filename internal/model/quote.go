package model

import (
	"time"

	"github.com/google/uuid"
)

// Quote is a saved estimate: the job as entered, its result and the
// display fields printed on the quote document.
type Quote struct {
	ID           string            `json:"id"`
	CreatedAt    string            `json:"created_at"`
	Customer     string            `json:"customer,omitempty"`
	Units        UnitSystem        `json:"units"`
	Quantity     int               `json:"quantity"`
	MaterialName string            `json:"material_name"`
	Finishing    []string          `json:"finishing"`
	SetupCount   int               `json:"setup_count"`
	Job          JobParameters     `json:"job"`
	Result       CalculationResult `json:"result"`
}

// NewQuote captures a calculated job. The result is stored unrounded.
func NewQuote(cat Catalog, job JobParameters, result CalculationResult) Quote {
	batches := make([]int, len(result.Batches))
	copy(batches, result.Batches)
	result.Batches = batches

	return Quote{
		ID:           uuid.New().String()[:8],
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		Units:        job.Units(),
		Quantity:     job.Quantity,
		MaterialName: cat.MaterialName(job.Material.MaterialID),
		Finishing:    job.Finishing.Names(),
		SetupCount:   job.SetupCount,
		Job:          job,
		Result:       result,
	}
}

// Title is used for document headers and file names.
func (q Quote) Title() string {
	return "Quote " + q.ID
}

// QuoteStore holds saved quotes, oldest first.
type QuoteStore struct {
	Quotes []Quote `json:"quotes"`
}

// NewQuoteStore creates an empty quote store.
func NewQuoteStore() QuoteStore {
	return QuoteStore{
		Quotes: []Quote{},
	}
}

// Add appends a quote to the store.
func (qs *QuoteStore) Add(q Quote) {
	qs.Quotes = append(qs.Quotes, q)
}

// Remove removes a quote by ID. Returns true if found and removed.
func (qs *QuoteStore) Remove(id string) bool {
	for i, q := range qs.Quotes {
		if q.ID == id {
			qs.Quotes = append(qs.Quotes[:i], qs.Quotes[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the quote with the given ID, or nil.
func (qs *QuoteStore) FindByID(id string) *Quote {
	for i := range qs.Quotes {
		if qs.Quotes[i].ID == id {
			return &qs.Quotes[i]
		}
	}
	return nil
}

// Latest returns up to n quotes, newest first.
func (qs *QuoteStore) Latest(n int) []Quote {
	if n > len(qs.Quotes) {
		n = len(qs.Quotes)
	}
	out := make([]Quote, 0, n)
	for i := len(qs.Quotes) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, qs.Quotes[i])
	}
	return out
}

// Trim keeps only the newest max quotes.
func (qs *QuoteStore) Trim(max int) {
	if max >= 0 && len(qs.Quotes) > max {
		qs.Quotes = append([]Quote{}, qs.Quotes[len(qs.Quotes)-max:]...)
	}
}
