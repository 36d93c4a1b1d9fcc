// Package importer reads material price lists from CSV and Excel files and
// part outlines from DXF drawings. Price lists get automatic delimiter
// detection and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/MachCost/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of a price list import.
type ImportResult struct {
	Costs    model.MaterialCostTable // base table with imported rows applied
	Updated  []string                // material IDs changed by the import, in file order
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Material int
	Cost     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"material": {"material", "name", "id", "material id", "material name", "alloy"},
	"cost":     {"cost", "cost per kg", "cost/kg", "$/kg", "price", "price per kg", "price/kg"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (material, cost) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Material: -1, Cost: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "material":
					if mapping.Material == -1 {
						mapping.Material = i
					}
				case "cost":
					if mapping.Cost == -1 {
						mapping.Cost = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Material: 0, Cost: 1}, false
	}
	return mapping, true
}

// ResolveMaterial maps a cell to a catalog ID. It accepts the ID itself or
// the display name, ignoring case and surrounding space.
func ResolveMaterial(cat model.Catalog, s string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", false
	}
	for _, m := range cat.Materials {
		if key == m.ID || key == strings.ToLower(m.Name) {
			return m.ID, true
		}
	}
	return "", false
}

// parseCost accepts plain numbers and an optional leading currency sign.
func parseCost(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a material ID and price from a row.
// Returns the ID, the price and any error message.
func parseRow(cat model.Catalog, row []string, mapping ColumnMapping, rowLabel string) (string, float64, string) {
	name := getCell(row, mapping.Material)
	if name == "" {
		return "", 0, fmt.Sprintf("%s: Missing material", rowLabel)
	}
	id, ok := ResolveMaterial(cat, name)
	if !ok {
		return "", 0, fmt.Sprintf("%s: Unknown material '%s'", rowLabel, name)
	}

	costStr := getCell(row, mapping.Cost)
	if costStr == "" {
		return "", 0, fmt.Sprintf("%s: Missing cost value", rowLabel)
	}
	cost, err := parseCost(costStr)
	if err != nil {
		return "", 0, fmt.Sprintf("%s: Invalid cost '%s'", rowLabel, costStr)
	}
	if cost <= 0 {
		return "", 0, fmt.Sprintf("%s: Cost must be positive", rowLabel)
	}
	return id, cost, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a price list from a CSV file onto base.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string, cat model.Catalog, base model.MaterialCostTable) ImportResult {
	result := ImportResult{Costs: base.Clone()}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(cat, base, records, "Line", warnings)
}

// ImportCSVFromReader imports a price list from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, cat model.Catalog, base model.MaterialCostTable) ImportResult {
	result := ImportResult{Costs: base.Clone()}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(cat, base, records, "Line", nil)
}

// ImportExcel imports a price list from the first sheet of an Excel file.
func ImportExcel(path string, cat model.Catalog, base model.MaterialCostTable) ImportResult {
	result := ImportResult{Costs: base.Clone()}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(cat, base, rows, "Row", nil)
}

// Import dispatches on the file extension: .xlsx/.xlsm/.xls go through
// excelize, everything else is read as CSV.
func Import(path string, cat model.Catalog, base model.MaterialCostTable) ImportResult {
	lower := strings.ToLower(path)
	for _, ext := range []string{".xlsx", ".xlsm", ".xls"} {
		if strings.HasSuffix(lower, ext) {
			return ImportExcel(path, cat, base)
		}
	}
	return ImportCSV(path, cat, base)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(cat model.Catalog, base model.MaterialCostTable, rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Costs:    base.Clone(),
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Material == -1 {
			missing = append(missing, "Material")
		}
		if mapping.Cost == -1 {
			missing = append(missing, "Cost")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		if _, err := parseCost(rows[0][1]); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := map[string]bool{}
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		id, cost, errMsg := parseRow(cat, row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if seen[id] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate entry for %s, using the later value", rowLabel, id))
		} else {
			result.Updated = append(result.Updated, id)
			seen[id] = true
		}
		result.Costs[id] = cost
	}

	if len(result.Updated) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
