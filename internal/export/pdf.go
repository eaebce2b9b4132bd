// Package export writes wastage reports and tile layouts to PDF, Excel and
// printable label sheets.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/Nithilan10/buildai/internal/model"
)

type rgb struct {
	R, G, B int
}

// surfaceColors mirrors the palette of the desktop surface grid.
var surfaceColors = []rgb{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 121, G: 85, B: 72},  // brown
}

var cutColor = rgb{R: 255, G: 205, B: 130}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// LayoutPage is one surface grid to draw after the report summary.
type LayoutPage struct {
	Surface model.Surface
	Tile    model.Tile
	Usage   model.TileUsage
}

// ExportReportPDF writes the report to path: a summary page followed by one
// page per layout. room may be nil and layouts may be empty.
func ExportReportPDF(path string, report *model.WastageReport, room *model.RoomDimensions, layouts []LayoutPage) error {
	pdf, err := buildReportPDF(report, room, layouts)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

// WriteReportPDF renders the same document as ExportReportPDF to w.
func WriteReportPDF(w io.Writer, report *model.WastageReport, room *model.RoomDimensions, layouts []LayoutPage) error {
	pdf, err := buildReportPDF(report, room, layouts)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildReportPDF(report *model.WastageReport, room *model.RoomDimensions, layouts []LayoutPage) (*fpdf.Fpdf, error) {
	if report == nil || len(report.Surfaces) == 0 {
		return nil, fmt.Errorf("no surfaces to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSummaryPage(pdf, report, room)

	for i, l := range layouts {
		if l.Surface.Validate() != nil || l.Tile.Validate() != nil {
			continue
		}
		pdf.AddPage()
		renderLayoutPage(pdf, l, i)
	}
	return pdf, pdf.Error()
}

func renderSummaryPage(pdf *fpdf.Fpdf, report *model.WastageReport, room *model.RoomDimensions) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Tile Wastage Report", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	items := []struct{ label, value string }{
		{"Tiles Needed", fmt.Sprintf("%d", report.Summary.TotalTilesNeeded)},
		{"Tiles To Order", fmt.Sprintf("%d", report.Summary.TotalTiles)},
		{"Wastage", fmt.Sprintf("%g%%", report.TotalWastage.Percentage)},
		{"Estimated Cost", money(report.Summary.TotalCost)},
	}
	if room != nil {
		items = append([]struct{ label, value string }{
			{"Room", fmt.Sprintf("%g x %g x %g ft (W x D x H)", room.Width, room.Depth, room.Height)},
		}, items...)
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(45, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	if report.TotalWastage.Reasoning != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight-5, 5, report.TotalWastage.Reasoning, "", 0, "L", false, 0, "")
		y += 7
	}
	y += 3

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Surface Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{32, 45, 30, 32, 20, 22, 20, 26, 40}
	headers := []string{"Surface", "Tile", "Area (sq ft)", "Tile Size (in)", "Needed", "Wastage", "Order", "Unit Cost", "Cost"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, s := range report.Surfaces {
		size := s.TileSize
		if size == "" {
			size = "-"
		}
		if s.TileSizeAssumed {
			size += " *"
		}
		row := []string{
			surfaceName(s),
			truncate(pdf, s.Name, colWidths[1]-2),
			fmt.Sprintf("%.1f", s.SurfaceAreaSqFt),
			size,
			fmt.Sprintf("%d", s.TilesNeeded),
			fmt.Sprintf("%g%%", s.WastagePercentage),
			fmt.Sprintf("%d", s.TotalTilesWithWastage),
			money(s.UnitCost),
			money(s.CostEstimate),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
		if y > pageHeight-marginBottom-40 {
			pdf.AddPage()
			y = marginTop
		}
	}

	y += 6
	y = renderBullets(pdf, "Recommendations", report.Recommendations, y)
	renderBullets(pdf, "Installation Tips", report.InstallationTips, y)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BuildAI - Tile Coverage Calculator. * tile size assumed", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func renderBullets(pdf *fpdf.Fpdf, title string, lines []string, y float64) float64 {
	if len(lines) == 0 {
		return y
	}
	if y > pageHeight-marginBottom-20 {
		pdf.AddPage()
		y = marginTop
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 6, title, "", 0, "L", false, 0, "")
	y += 7

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range lines {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight-5, 5, "- "+line, "", 0, "L", false, 0, "")
		y += 5
	}
	return y + 4
}

// renderLayoutPage draws the grid of one surface: whole tiles in the
// surface color, trimmed edge tiles hatched.
func renderLayoutPage(pdf *fpdf.Fpdf, l LayoutPage, index int) {
	surface := l.Surface
	if l.Tile.Unit != "" {
		surface = surface.In(l.Tile.Unit)
	}
	unit := string(l.Tile.Unit)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	label := surface.Label
	if label == "" {
		label = fmt.Sprintf("Surface %d", index+1)
	}
	title := fmt.Sprintf("%s (%g x %g %s)", label, round1(surface.Width), round1(surface.Height), unit)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Tile: %g x %g %s | Grid: %d x %d | Full tiles: %d | Cut tiles: %d | Total: %d",
		l.Tile.Width, l.Tile.Height, unit, l.Usage.Columns, l.Usage.Rows,
		l.Usage.FullTiles(), l.Usage.CutTiles(), l.Usage.TotalTiles)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/surface.Width, drawHeight/surface.Height)
	canvasW := surface.Width * scale
	canvasH := surface.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Uncovered background.
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	tw, th := l.Tile.Width*scale, l.Tile.Height*scale
	fullW, fullH := float64(l.Usage.Columns)*tw, float64(l.Usage.Rows)*th

	col := surfaceColors[index%len(surfaceColors)]
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.Rect(offsetX, offsetY, fullW, fullH, "F")

	if l.Usage.AllowPartial {
		pdf.SetFillColor(cutColor.R, cutColor.G, cutColor.B)
		if l.Usage.LeftoverWidth > 0 {
			pdf.Rect(offsetX+fullW, offsetY, canvasW-fullW, canvasH, "F")
			drawHatchPattern(pdf, offsetX+fullW, offsetY, canvasW-fullW, canvasH)
		}
		if l.Usage.LeftoverHeight > 0 {
			pdf.Rect(offsetX, offsetY+fullH, fullW, canvasH-fullH, "F")
			drawHatchPattern(pdf, offsetX, offsetY+fullH, fullW, canvasH-fullH)
		}
	}

	// Grout lines.
	pdf.SetDrawColor(255, 255, 255)
	pdf.SetLineWidth(0.2)
	gridW, gridH := fullW, fullH
	if l.Usage.AllowPartial {
		gridW, gridH = canvasW, canvasH
	}
	for c := 1; c <= l.Usage.Columns && float64(c)*tw < canvasW; c++ {
		pdf.Line(offsetX+float64(c)*tw, offsetY, offsetX+float64(c)*tw, offsetY+gridH)
	}
	for r := 1; r <= l.Usage.Rows && float64(r)*th < canvasH; r++ {
		pdf.Line(offsetX, offsetY+float64(r)*th, offsetX+gridW, offsetY+float64(r)*th)
	}

	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "D")

	drawDimensionAnnotations(pdf, surface, unit, offsetX, offsetY, canvasW, canvasH)
	drawLayoutLegend(pdf, l, col, offsetY+canvasH+7)
}

func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 110, 0)
	pdf.SetLineWidth(0.15)

	const spacing = 3.0
	for d := spacing; d < w+h; d += spacing {
		pdf.Line(x+math.Max(0, d-h), y+math.Min(h, d), x+math.Min(w, d), y+math.Max(0, d-w))
	}
}

func drawDimensionAnnotations(pdf *fpdf.Fpdf, s model.Surface, unit string, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%g %s", round1(s.Width), unit)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%g %s", round1(s.Height), unit)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func drawLayoutLegend(pdf *fpdf.Fpdf, l LayoutPage, col rgb, y float64) {
	pdf.SetFont("Helvetica", "", 8)
	x := marginLeft

	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.Rect(x, y+0.5, 3, 3, "F")
	pdf.SetXY(x+4, y)
	pdf.CellFormat(40, 4, fmt.Sprintf("Full tiles (%d)", l.Usage.FullTiles()), "", 0, "L", false, 0, "")
	x += 45

	if l.Usage.AllowPartial {
		pdf.SetFillColor(cutColor.R, cutColor.G, cutColor.B)
		pdf.Rect(x, y+0.5, 3, 3, "F")
		pdf.SetXY(x+4, y)
		pdf.CellFormat(40, 4, fmt.Sprintf("Cut tiles (%d)", l.Usage.CutTiles()), "", 0, "L", false, 0, "")
		x += 45
	}

	pdf.SetXY(x, y)
	left := fmt.Sprintf("Leftover: %g x %g %s", round1(l.Usage.LeftoverWidth), round1(l.Usage.LeftoverHeight), l.Tile.Unit)
	pdf.CellFormat(80, 4, left, "", 0, "L", false, 0, "")
}

func surfaceName(s model.SurfaceEstimate) string {
	if s.SurfaceName != "" {
		return s.SurfaceName
	}
	return s.Surface.DisplayName()
}

// truncate shortens text with an ellipsis to fit width at the current font.
func truncate(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	r := []rune(text)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
