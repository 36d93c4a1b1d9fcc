package export

import (
	"fmt"
	"io"

	"github.com/piwi3910/MachCost/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	quoteSheet      = "Quote"
	comparisonSheet = "Materials"
)

// ExportQuoteXLSX writes the quote workbook to path.
func ExportQuoteXLSX(path string, q model.Quote, comparison []model.MaterialComparison) error {
	f, err := buildQuoteWorkbook(q, comparison)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteQuoteXLSX streams the quote workbook to w.
func WriteQuoteXLSX(w io.Writer, q model.Quote, comparison []model.MaterialComparison) error {
	f, err := buildQuoteWorkbook(q, comparison)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// buildQuoteWorkbook lays out the summary and batches on one sheet and, when
// given, the material comparison on a second sheet.
func buildQuoteWorkbook(q model.Quote, comparison []model.MaterialComparison) (*excelize.File, error) {
	if err := checkQuote(q); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), quoteSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	cell := func(col, row int) string {
		name, _ := excelize.CoordinatesToCellName(col, row)
		return name
	}

	f.SetCellValue(quoteSheet, "A1", "CNC Machining Quote "+q.ID)
	f.SetCellValue(quoteSheet, "A2", q.CreatedAt)

	row := 4
	f.SetCellValue(quoteSheet, cell(1, row), "Item")
	f.SetCellValue(quoteSheet, cell(2, row), "Details")
	f.SetCellStyle(quoteSheet, cell(1, row), cell(2, row), headerStyle)
	for _, r := range SummaryRows(q) {
		row++
		f.SetCellValue(quoteSheet, cell(1, row), r.Label)
		f.SetCellValue(quoteSheet, cell(2, row), r.Value)
	}

	row += 2
	f.SetCellValue(quoteSheet, cell(1, row), "Batch")
	f.SetCellValue(quoteSheet, cell(2, row), "Pieces")
	f.SetCellStyle(quoteSheet, cell(1, row), cell(2, row), headerStyle)
	for i, n := range q.Result.Batches {
		row++
		f.SetCellValue(quoteSheet, cell(1, row), i+1)
		f.SetCellValue(quoteSheet, cell(2, row), n)
	}
	f.SetColWidth(quoteSheet, "A", "B", 24)

	if len(comparison) > 0 {
		if _, err := f.NewSheet(comparisonSheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add sheet: %w", err)
		}
		headers := []string{"Material", "Density", "Cost per " + q.Units.MassUnit(), "Weight per Piece", "Cost per Piece", "Total Cost"}
		for i, h := range headers {
			f.SetCellValue(comparisonSheet, cell(i+1, 1), h)
		}
		f.SetCellStyle(comparisonSheet, "A1", cell(len(headers), 1), headerStyle)
		for i, c := range comparison {
			r := i + 2
			f.SetCellValue(comparisonSheet, cell(1, r), c.Name)
			f.SetCellValue(comparisonSheet, cell(2, r), c.Density)
			f.SetCellValue(comparisonSheet, cell(3, r), model.Round2(c.CostPerMass))
			f.SetCellValue(comparisonSheet, cell(4, r), model.Round2(c.WeightPerPiece))
			f.SetCellValue(comparisonSheet, cell(5, r), model.Round2(c.CostPerPiece))
			f.SetCellValue(comparisonSheet, cell(6, r), model.Round2(c.TotalCost))
		}
		f.SetPanes(comparisonSheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
		})
		f.SetColWidth(comparisonSheet, "A", "F", 16)
	}

	return f, nil
}
