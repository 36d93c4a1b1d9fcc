package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/MachCost/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 7.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// ExportQuotePDF writes the quote as a one-page PDF with a QR code carrying
// the key figures.
func ExportQuotePDF(path string, q model.Quote) error {
	pdf, err := buildQuotePDF(q)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WriteQuotePDF streams the quote PDF to w.
func WriteQuotePDF(w io.Writer, q model.Quote) error {
	pdf, err := buildQuotePDF(q)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildQuotePDF(q model.Quote) (*fpdf.Fpdf, error) {
	if err := checkQuote(q); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom+5)
	pdf.SetTitle(q.Title(), false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-marginBottom)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(contentWidth, 4, "Generated by MachCost - CNC Machining Cost Estimator", "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth-qrSize, headerHeight, "CNC Machining Quote", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	sub := fmt.Sprintf("Quote %s | %s | %s units", q.ID, q.CreatedAt, q.Units)
	if q.Customer != "" {
		sub = fmt.Sprintf("Quote %s for %s | %s | %s units", q.ID, q.Customer, q.CreatedAt, q.Units)
	}
	pdf.CellFormat(contentWidth-qrSize, 5, sub, "", 0, "L", false, 0, "")

	if err := renderQR(pdf, pageWidth-marginRight-qrSize, marginTop, NewQRPayload(q)); err != nil {
		return nil, err
	}

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	y := marginTop + qrSize + 4
	pdf.Line(marginLeft, y, pageWidth-marginRight, y)
	y += 6

	y = drawTable(pdf, y, "Quote Summary", []string{"Item", "Details"}, SummaryRows(q))
	y += 6
	y = drawTable(pdf, y, "Batch Distribution", []string{"Batch", "Pieces"}, BatchRows(q))
	y += 6
	drawTable(pdf, y, "Cost Breakdown", []string{"Component", "Amount"}, breakdownRows(q))

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build PDF: %w", err)
	}
	return pdf, nil
}

// drawTable renders a two-column table with a shaded header and alternating
// row fill. It returns the y position below the table.
func drawTable(pdf *fpdf.Fpdf, y float64, title string, headers []string, rows []Row) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 7, title, "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{contentWidth * 0.45, contentWidth * 0.55}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		if y > pageHeight-marginBottom-rowHeight-5 {
			pdf.AddPage()
			y = marginTop
		}
		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(245, 245, 245)
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(colWidths[0], rowHeight, row.Label, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[1], rowHeight, row.Value, "1", 0, "L", fill, 0, "")
		y += rowHeight
	}
	return y
}

func breakdownRows(q model.Quote) []Row {
	b := q.Result.Breakdown
	rows := []Row{
		{"Machine Cost (lot)", model.FormatMoney(b.MachineCost)},
		{"Setup Cost (lot)", model.FormatMoney(b.SetupCost)},
		{"Programming Cost (lot)", model.FormatMoney(b.ProgrammingCost)},
		{"Material Cost (lot)", model.FormatMoney(b.MaterialCost)},
		{"Finishing per Piece", model.FormatMoney(b.FinishingPerPiece)},
		{"Tooling per Piece", model.FormatMoney(b.ToolPerPiece)},
		{"Cost per Piece before Markup", model.FormatMoney(b.BasePerPiece)},
	}
	if b.MarkupFactor > 1 {
		rows = append(rows, Row{"Markup", fmt.Sprintf("%.1f%%", (b.MarkupFactor-1)*100)})
	}
	return rows
}
