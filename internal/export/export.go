// Package export renders saved quotes as print-ready HTML, PDF and Excel
// documents.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/MachCost/internal/model"
)

var (
	// ErrNothingToExport is returned for a quote without a calculated result.
	ErrNothingToExport = errors.New("nothing to export: calculate the job first")
	// ErrPrintBlocked is returned when the print preview could not be opened.
	ErrPrintBlocked = errors.New("print preview blocked: allow pop-ups or open the file manually")
)

// Row is one label/value line of the quote summary table.
type Row struct {
	Label string
	Value string
}

// SummaryRows returns the quote table in display order. Money and time are
// rounded to two decimals here and nowhere earlier.
func SummaryRows(q model.Quote) []Row {
	r := q.Result.Rounded()
	return []Row{
		{"Quantity", fmt.Sprintf("%d", q.Quantity)},
		{"Material", q.MaterialName},
		{"Finishing", strings.Join(q.Finishing, ", ")},
		{"Number of Setups", fmt.Sprintf("%d", q.SetupCount)},
		{"Total Machine Time", model.FormatHours(r.TotalMachineTime)},
		{"Material Cost", model.FormatMoney(r.MaterialCost)},
		{"Cost per Piece", model.FormatMoney(r.CostPerPiece)},
		{"Total Lot Cost", model.FormatMoney(r.TotalLotCost)},
	}
}

// BatchRows lists the batch distribution, one row per batch.
func BatchRows(q model.Quote) []Row {
	rows := make([]Row, len(q.Result.Batches))
	for i, n := range q.Result.Batches {
		rows[i] = Row{fmt.Sprintf("Batch %d", i+1), fmt.Sprintf("%d pcs", n)}
	}
	return rows
}

func checkQuote(q model.Quote) error {
	if q.Quantity < 1 || len(q.Result.Batches) == 0 {
		return ErrNothingToExport
	}
	return nil
}

// FileName returns a file name for the quote with the given extension.
func FileName(q model.Quote, ext string) string {
	return "quote-" + q.ID + "." + strings.TrimPrefix(ext, ".")
}
