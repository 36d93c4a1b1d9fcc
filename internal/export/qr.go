package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/MachCost/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the printed QR code edge length in mm.
const qrSize = 28.0

// QRPayload is the JSON encoded into the quote's QR code so a scanned
// printout can be matched back to the saved quote.
type QRPayload struct {
	QuoteID      string  `json:"quote_id"`
	CreatedAt    string  `json:"created_at"`
	Quantity     int     `json:"qty"`
	Material     string  `json:"material"`
	CostPerPiece float64 `json:"cost_per_piece"`
	TotalLotCost float64 `json:"total_lot_cost"`
}

// NewQRPayload extracts the QR fields from a quote, rounded for display.
func NewQRPayload(q model.Quote) QRPayload {
	r := q.Result.Rounded()
	return QRPayload{
		QuoteID:      q.ID,
		CreatedAt:    q.CreatedAt,
		Quantity:     q.Quantity,
		Material:     q.MaterialName,
		CostPerPiece: r.CostPerPiece,
		TotalLotCost: r.TotalLotCost,
	}
}

// QRCodePNG encodes the payload as a PNG image of the given pixel size.
func QRCodePNG(p QRPayload, size int) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR payload: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// renderQR places the payload's QR code at x, y.
func renderQR(pdf *fpdf.Fpdf, x, y float64, p QRPayload) error {
	png, err := QRCodePNG(p, 256)
	if err != nil {
		return err
	}
	imgName := "qr_" + p.QuoteID
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x, y, qrSize, qrSize, false, opts, 0, "")
	return nil
}
