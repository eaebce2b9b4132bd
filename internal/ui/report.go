package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Nithilan10/buildai/internal/engine"
	"github.com/Nithilan10/buildai/internal/export"
)

func (a *App) buildReportPanel() fyne.CanvasObject {
	a.reportContainer = container.NewVBox()
	a.refreshReport()

	calcBtn := widget.NewButtonWithIcon("Calculate", theme.MediaPlayIcon(), a.calculate)
	calcBtn.Importance = widget.HighImportance

	toolbar := container.NewHBox(
		calcBtn,
		widget.NewButtonWithIcon("PDF", theme.DocumentSaveIcon(), a.exportPDF),
		widget.NewButtonWithIcon("Excel", theme.DocumentSaveIcon(), a.exportExcel),
		widget.NewButtonWithIcon("Labels", theme.DocumentPrintIcon(), a.exportLabels),
	)
	return container.NewBorder(toolbar, nil, nil, nil, container.NewVScroll(a.reportContainer))
}

// calculate rebuilds the wastage report from the room form and placed tiles.
func (a *App) calculate() {
	if err := a.roomForm.apply(&a.project); err != nil {
		a.showError(err)
		return
	}
	report, err := engine.ComputeWastageReportWithOptions(a.project.Room, a.project.Tiles,
		engine.OptionsFromSettings(a.project.Settings))
	if err != nil {
		a.showError(err)
		return
	}
	a.project.Report = report
	a.refreshReport()
}

func (a *App) refreshReport() {
	if a.reportContainer == nil {
		return
	}
	a.reportContainer.RemoveAll()
	defer a.reportContainer.Refresh()

	r := a.project.Report
	if r == nil {
		a.reportContainer.Add(widget.NewLabel("Enter the room, place tiles and press Calculate."))
		return
	}

	cur := a.currency()
	s := r.Summary
	summary := widget.NewCard("Summary", r.TotalWastage.Reasoning, container.NewGridWithColumns(2,
		widget.NewLabel("Tiles needed"), widget.NewLabel(fmt.Sprintf("%d", s.TotalTilesNeeded)),
		widget.NewLabel("Tiles to order"), widget.NewLabel(fmt.Sprintf("%d", s.TotalTiles)),
		widget.NewLabel("Wastage"), widget.NewLabel(fmt.Sprintf("%.1f%%", s.TotalWastagePercentage)),
		widget.NewLabel("Estimated cost"), widget.NewLabelWithStyle(fmt.Sprintf("%s%.2f", cur, s.TotalCost),
			fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	))
	a.reportContainer.Add(summary)

	rows := container.NewGridWithColumns(6,
		boldLabel("Surface"), boldLabel("Tile"), boldLabel("Area (sq ft)"),
		boldLabel("Needed"), boldLabel("To Order"), boldLabel("Cost"),
	)
	for _, e := range r.Surfaces {
		tile := e.TileSize
		if e.TileSizeAssumed {
			tile += " (assumed)"
		}
		rows.Add(widget.NewLabel(e.SurfaceName))
		rows.Add(widget.NewLabel(tile))
		rows.Add(widget.NewLabel(fmt.Sprintf("%.1f", e.SurfaceAreaSqFt)))
		rows.Add(widget.NewLabel(fmt.Sprintf("%d", e.TilesNeeded)))
		rows.Add(widget.NewLabel(fmt.Sprintf("%d (+%g%%)", e.TotalTilesWithWastage, e.WastagePercentage)))
		rows.Add(widget.NewLabel(fmt.Sprintf("%s%.2f", cur, e.CostEstimate)))
	}
	a.reportContainer.Add(widget.NewCard("Surfaces", "", rows))

	a.reportContainer.Add(bulletCard("Recommendations", r.Recommendations))
	a.reportContainer.Add(bulletCard("Installation Tips", r.InstallationTips))
}

func (a *App) currency() string {
	if a.project.Settings.Currency != "" {
		return a.project.Settings.Currency
	}
	return "$"
}

func boldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func bulletCard(title string, lines []string) *widget.Card {
	box := container.NewVBox()
	for _, l := range lines {
		lbl := widget.NewLabel("• " + l)
		lbl.Wrapping = fyne.TextWrapWord
		box.Add(lbl)
	}
	return widget.NewCard(title, "", box)
}

// reportOrWarn calculates on demand and reports whether a report exists.
func (a *App) reportOrWarn() bool {
	if a.project.Report == nil {
		a.calculate()
	}
	return a.project.Report != nil
}

// layoutPages renders the grid layouts for the PDF. Layout errors are not
// fatal for the export; the summary page is still written.
func (a *App) layoutPages() []export.LayoutPage {
	layouts, err := engine.ComputeMultiSurfaceLayoutMode(a.project.RoomSurfaces(), a.project.Layout, a.project.Settings.AllowPartial)
	if err != nil {
		return nil
	}
	pages := make([]export.LayoutPage, len(layouts))
	for i, l := range layouts {
		pages[i] = export.LayoutPage{Surface: l.Surface, Tile: a.project.Layout, Usage: l.Usage}
	}
	return pages
}

// saveFile shows a save dialog and runs write with the chosen path.
func (a *App) saveFile(name, done string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s written to:\n%s", done, path), a.window)
	}, a.window)
	d.SetFileName(name)
	d.Show()
}

func (a *App) exportPDF() {
	if !a.reportOrWarn() {
		return
	}
	a.saveFile(a.project.Name+"-report.pdf", "PDF report", func(path string) error {
		return export.ExportReportPDF(path, a.project.Report, a.project.Room, a.layoutPages())
	})
}

func (a *App) exportExcel() {
	if !a.reportOrWarn() {
		return
	}
	a.saveFile(a.project.Name+"-report.xlsx", "Excel workbook", func(path string) error {
		return export.ExportExcel(path, a.project.Report)
	})
}

func (a *App) exportLabels() {
	if !a.reportOrWarn() {
		return
	}
	a.saveFile(a.project.Name+"-labels.pdf", "Order labels", func(path string) error {
		return export.ExportLabels(path, a.project.Report)
	})
}

func (a *App) showError(err error) {
	dialog.ShowError(err, a.window)
}
