// Package importer reads placed-tile lists from CSV and Excel files and
// floor-plan surfaces from DXF drawings.
//
// Tabular imports detect the delimiter, map columns by header name
// (case-insensitive, with aliases) and collect per-row errors and warnings
// instead of aborting on the first bad row.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Nithilan10/buildai/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Tiles    []model.PlacedTile
	Errors   []string
	Warnings []string
}

// ColumnMapping maps column roles to their indices; -1 means absent.
type ColumnMapping struct {
	Name    int
	Width   int
	Height  int
	Surface int
	Price   int
	Pattern int
}

var headerAliases = map[string][]string{
	"name":    {"name", "tile", "tile name", "product", "label", "description", "item"},
	"width":   {"width", "w", "tile width", "width (in)"},
	"height":  {"height", "h", "length", "tile height", "height (in)"},
	"surface": {"surface", "wall", "placement", "location", "area"},
	"price":   {"price", "cost", "unit price", "unit cost", "price per tile"},
	"pattern": {"pattern", "layout", "complexity", "installation"},
}

// DetectCSVDelimiter picks the delimiter among comma, semicolon, tab and pipe
// that yields the most consistent multi-column rows.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
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
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// DetectColumns maps a header row. When no cell matches a known alias it
// returns the positional mapping name,width,height,surface,price,pattern and
// false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	m := ColumnMapping{Name: -1, Width: -1, Height: -1, Surface: -1, Price: -1, Pattern: -1}
	slots := map[string]*int{
		"name": &m.Name, "width": &m.Width, "height": &m.Height,
		"surface": &m.Surface, "price": &m.Price, "pattern": &m.Pattern,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && *slots[role] == -1 {
					*slots[role] = i
					isHeader = true
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, Width: 1, Height: 2, Surface: 3, Price: 4, Pattern: 5}, false
	}
	return m, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseSize reads an optional positive size; empty means unknown.
func parseSize(s string) (float64, bool, error) {
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSuffix(s, "\""), "in"), 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("size %q is not a finite number", s)
	}
	return v, true, nil
}

// parseRow extracts a placed tile. It returns the tile, an error message and
// a warning message.
func parseRow(row []string, m ColumnMapping, rowLabel string, count int) (model.PlacedTile, string, string) {
	var warnings []string

	name := getCell(row, m.Name)
	if name == "" {
		name = fmt.Sprintf("Tile %d", count+1)
	}

	surfaceStr := getCell(row, m.Surface)
	if surfaceStr == "" {
		return model.PlacedTile{}, fmt.Sprintf("%s: Missing surface value", rowLabel), ""
	}
	surface, err := model.ParseSurfaceTag(surfaceStr)
	if err != nil {
		return model.PlacedTile{}, fmt.Sprintf("%s: Unknown surface '%s'", rowLabel, surfaceStr), ""
	}

	widthStr := getCell(row, m.Width)
	width, hasWidth, err := parseSize(widthStr)
	if err != nil {
		return model.PlacedTile{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}
	heightStr := getCell(row, m.Height)
	height, hasHeight, err := parseSize(heightStr)
	if err != nil {
		return model.PlacedTile{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), ""
	}
	if width < 0 || height < 0 {
		return model.PlacedTile{}, fmt.Sprintf("%s: Width and height must not be negative", rowLabel), ""
	}
	if !hasWidth || !hasHeight || width == 0 || height == 0 {
		warnings = append(warnings, fmt.Sprintf("%s: Tile size missing, %gx%g in will be assumed",
			rowLabel, model.FallbackTileWidth, model.FallbackTileHeight))
	}

	var price float64
	if priceStr := strings.TrimPrefix(getCell(row, m.Price), "$"); priceStr != "" {
		price, err = strconv.ParseFloat(priceStr, 64)
		if err != nil || !(price >= 0) || math.IsInf(price, 1) {
			return model.PlacedTile{}, fmt.Sprintf("%s: Invalid price '%s'", rowLabel, priceStr), ""
		}
	}

	tile := model.NewPlacedTile(name, width, height, surface, price)

	if patternStr := getCell(row, m.Pattern); patternStr != "" {
		if pattern, err := model.ParseComplexity(patternStr); err == nil {
			tile.Pattern = pattern
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown pattern '%s', using the default wastage", rowLabel, patternStr))
		}
	}

	return tile, "", strings.Join(warnings, "; ")
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports placed tiles from a CSV file.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

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
	if delimiter != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", name))
	}

	res := ImportCSVFromReader(bytes.NewReader(data), delimiter)
	res.Warnings = append(result.Warnings, res.Warnings...)
	return res
}

// ImportCSVFromReader imports placed tiles from r using a known delimiter.
func ImportCSVFromReader(r io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}
	return importFromRows(records, "Line")
}

// ImportExcel imports placed tiles from the first sheet of a workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

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
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}
	return importFromRows(rows, "Row")
}

// ImportFile dispatches on the file extension: .xlsx/.xlsm/.xls go to
// ImportExcel, everything else to ImportCSV.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	for _, ext := range []string{".xlsx", ".xlsm", ".xls"} {
		if strings.HasSuffix(lower, ext) {
			return ImportExcel(path)
		}
	}
	return ImportCSV(path)
}

func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Surface == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Surface")
			return result
		}
	} else if len(rows[0]) >= 4 {
		if _, err := model.ParseSurfaceTag(rows[0][3]); err != nil {
			start = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		tile, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Tiles))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Tiles = append(result.Tiles, tile)
	}

	if len(result.Tiles) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
