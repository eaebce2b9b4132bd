package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Nithilan10/buildai/internal/model"
)

const (
	surfacesSheet = "Surfaces"
	summarySheet  = "Summary"
)

var surfaceHeaders = []interface{}{
	"Surface", "Tile", "Dimensions (ft)", "Tile Size", "Area (sq ft)", "Area (sq in)",
	"Tile Area (sq in)", "Tiles Needed", "Wastage %", "Tiles To Order", "Unit Cost", "Cost", "Size Assumed", "Reasoning",
}

// ExportExcel writes the report as a workbook with a Surfaces and a Summary
// sheet.
func ExportExcel(path string, report *model.WastageReport) error {
	f, err := buildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	return nil
}

// WriteExcel renders the same workbook as ExportExcel to w.
func WriteExcel(w io.Writer, report *model.WastageReport) error {
	f, err := buildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

func buildWorkbook(report *model.WastageReport) (*excelize.File, error) {
	if report == nil || len(report.Surfaces) == 0 {
		return nil, fmt.Errorf("no surfaces to export")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), surfacesSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSurfaces(f, report); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, report); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeSurfaces(f *excelize.File, report *model.WastageReport) error {
	if err := f.SetSheetRow(surfacesSheet, "A1", &surfaceHeaders); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(surfaceHeaders), 1)
	if err := f.SetCellStyle(surfacesSheet, "A1", last, bold); err != nil {
		return err
	}

	for i, s := range report.Surfaces {
		row := []interface{}{
			surfaceName(s), s.Name, s.Dimensions, s.TileSize,
			s.SurfaceAreaSqFt, s.SurfaceAreaSqIn, s.TileAreaSqIn,
			s.TilesNeeded, s.WastagePercentage, s.TotalTilesWithWastage,
			s.UnitCost, s.CostEstimate, s.TileSizeAssumed, s.WastageReasoning,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(surfacesSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(surfacesSheet, "A", "N", 16)
}

func writeSummary(f *excelize.File, report *model.WastageReport) error {
	rows := [][]interface{}{
		{"Total Tiles Needed", report.Summary.TotalTilesNeeded},
		{"Total Tiles To Order", report.Summary.TotalTiles},
		{"Total Cost", report.Summary.TotalCost},
		{"Wastage %", report.TotalWastage.Percentage},
		{"Wastage Reasoning", report.TotalWastage.Reasoning},
		{},
	}
	for _, r := range report.Recommendations {
		rows = append(rows, []interface{}{"Recommendation", r})
	}
	for _, tip := range report.InstallationTips {
		rows = append(rows, []interface{}{"Installation Tip", tip})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 22); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "B", "B", 70)
}
