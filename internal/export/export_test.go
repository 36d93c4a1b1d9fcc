package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/MachCost/internal/model"
	"github.com/xuri/excelize/v2"
)

// buildTestQuote creates a realistic calculated quote for testing.
func buildTestQuote(t *testing.T) model.Quote {
	t.Helper()
	cat := model.DefaultCatalog()
	job := model.DefaultJobParameters(cat, model.UnitsMetric)
	job.MachineTime = model.TimeSpan{Hours: 1}
	job.MachineRate = 50
	job.SetupTime = model.TimeSpan{Minutes: 30}
	job.SetupRate = 40
	job.Quantity = 10
	job.SetupCount = 3
	job.Material.Volume = 100
	job.Finishing, _ = cat.Finishing.Selection("anodizing", "bead-blasting")

	res, err := model.Calculate(job)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	q := model.NewQuote(cat, job, res)
	q.Customer = "Acme <Tools>"
	return q
}

func TestSummaryRows(t *testing.T) {
	q := buildTestQuote(t)
	rows := SummaryRows(q)

	want := map[string]string{
		"Quantity":         "10",
		"Material":         "Aluminum",
		"Finishing":        "Anodizing, Bead Blasting",
		"Number of Setups": "3",
	}
	for _, r := range rows {
		if v, ok := want[r.Label]; ok && v != r.Value {
			t.Errorf("%s: expected %q, got %q", r.Label, v, r.Value)
		}
	}
	if last := rows[len(rows)-1]; last.Label != "Total Lot Cost" || !strings.HasPrefix(last.Value, "$") {
		t.Errorf("unexpected last row %+v", last)
	}

	batches := BatchRows(q)
	if len(batches) != 3 || batches[0].Value != "4 pcs" {
		t.Errorf("unexpected batch rows %v", batches)
	}
}

func TestRenderQuoteHTML(t *testing.T) {
	q := buildTestQuote(t)
	var buf bytes.Buffer
	if err := RenderQuoteHTML(&buf, q); err != nil {
		t.Fatalf("RenderQuoteHTML failed: %v", err)
	}
	out := buf.String()

	for _, s := range []string{"CNC Machining Quote", "Anodizing, Bead Blasting", "Batch 3", "Total Lot Cost", q.ID} {
		if !strings.Contains(out, s) {
			t.Errorf("expected HTML to contain %q", s)
		}
	}
	if strings.Contains(out, "<Tools>") {
		t.Error("customer name should be escaped")
	}
}

func TestExportRequiresResult(t *testing.T) {
	empty := model.Quote{ID: "x"}
	if err := RenderQuoteHTML(&bytes.Buffer{}, empty); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("expected ErrNothingToExport, got %v", err)
	}
	if err := WriteQuotePDF(&bytes.Buffer{}, empty); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("expected ErrNothingToExport, got %v", err)
	}
	if err := WriteQuoteXLSX(&bytes.Buffer{}, empty, nil); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("expected ErrNothingToExport, got %v", err)
	}
}

func TestOpenPrintPreview(t *testing.T) {
	q := buildTestQuote(t)
	dir := t.TempDir()

	var opened string
	path, err := OpenPrintPreview(dir, q, func(p string) error {
		opened = p
		return nil
	})
	if err != nil {
		t.Fatalf("OpenPrintPreview failed: %v", err)
	}
	if opened != path || filepath.Base(path) != FileName(q, "html") {
		t.Errorf("unexpected path %q (opened %q)", path, opened)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}

	_, err = OpenPrintPreview(dir, q, func(string) error { return errors.New("no browser") })
	if !errors.Is(err, ErrPrintBlocked) {
		t.Errorf("expected ErrPrintBlocked, got %v", err)
	}
}

func TestExportQuotePDF(t *testing.T) {
	q := buildTestQuote(t)
	path := filepath.Join(t.TempDir(), "quote.pdf")

	if err := ExportQuotePDF(path, q); err != nil {
		t.Fatalf("ExportQuotePDF failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PDF file is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with PDF header")
	}
}

func TestWriteQuotePDFManyBatches(t *testing.T) {
	q := buildTestQuote(t)
	q.Result.Batches = model.DistributeBatches(500, 60)
	var buf bytes.Buffer
	if err := WriteQuotePDF(&buf, q); err != nil {
		t.Fatalf("WriteQuotePDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not start with PDF header")
	}
}

func TestQRPayload(t *testing.T) {
	q := buildTestQuote(t)
	p := NewQRPayload(q)
	if p.QuoteID != q.ID || p.Quantity != 10 || p.Material != "Aluminum" {
		t.Errorf("unexpected payload %+v", p)
	}
	if p.CostPerPiece != model.Round2(q.Result.CostPerPiece) {
		t.Errorf("expected rounded cost per piece, got %f", p.CostPerPiece)
	}
	if _, err := json.Marshal(p); err != nil {
		t.Fatalf("marshal: %v", err)
	}

	png, err := QRCodePNG(p, 128)
	if err != nil {
		t.Fatalf("QRCodePNG failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG data")
	}
}

func TestExportQuoteXLSX(t *testing.T) {
	q := buildTestQuote(t)
	rows, err := model.DefaultCatalog().CompareMaterials(100, model.UnitsMetric, 10)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	path := filepath.Join(t.TempDir(), "quote.xlsx")
	if err := ExportQuoteXLSX(path, q, rows); err != nil {
		t.Fatalf("ExportQuoteXLSX failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Quote" || sheets[1] != "Materials" {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	v, err := f.GetCellValue("Quote", "B6")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if v != "Aluminum" {
		t.Errorf("expected material in B6, got %q", v)
	}
	name, _ := f.GetCellValue("Materials", "A10")
	if name != "Plastic (Nylon)" {
		t.Errorf("expected last material row, got %q", name)
	}
}
