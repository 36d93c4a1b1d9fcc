package export

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/piwi3910/MachCost/internal/model"
)

var quoteTemplate = template.Must(template.New("quote").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>CNC Machining Quote {{.Quote.ID}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
h1 { color: #2c3e50; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
.total { font-weight: bold; }
@media print { .no-print { display: none; } }
</style>
</head>
<body>
<h1>CNC Machining Quote</h1>
<p>Quote {{.Quote.ID}}{{with .Quote.Customer}} for {{.}}{{end}}, {{.Date}}</p>
<table>
<tr><th>Item</th><th>Details</th></tr>
{{range .Rows}}<tr{{if eq .Label "Total Lot Cost"}} class="total"{{end}}><td>{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
<h2>Batch Distribution</h2>
<table>
{{range .Batches}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
<button class="no-print" onclick="window.print()">Print</button>
</body>
</html>
`))

type htmlQuote struct {
	Quote   model.Quote
	Date    string
	Rows    []Row
	Batches []Row
}

// RenderQuoteHTML writes the printable quote document.
func RenderQuoteHTML(w io.Writer, q model.Quote) error {
	if err := checkQuote(q); err != nil {
		return err
	}
	data := htmlQuote{
		Quote:   q,
		Date:    q.CreatedAt,
		Rows:    SummaryRows(q),
		Batches: BatchRows(q),
	}
	if err := quoteTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render quote: %w", err)
	}
	return nil
}

// ExportQuoteHTML writes the printable quote to path.
func ExportQuoteHTML(path string, q model.Quote) error {
	if err := checkQuote(q); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create quote file: %w", err)
	}
	if err := RenderQuoteHTML(f, q); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// OpenPrintPreview writes the quote into dir and hands the file to open,
// typically a browser launcher. A failing opener is reported as
// ErrPrintBlocked; the written path is returned either way.
func OpenPrintPreview(dir string, q model.Quote, open func(path string) error) (string, error) {
	path := filepath.Join(dir, FileName(q, "html"))
	if err := ExportQuoteHTML(path, q); err != nil {
		return "", err
	}
	if err := open(path); err != nil {
		return path, fmt.Errorf("%w: %v", ErrPrintBlocked, err)
	}
	return path, nil
}
