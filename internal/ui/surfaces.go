package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Nithilan10/buildai/internal/engine"
	"github.com/Nithilan10/buildai/internal/importer"
	"github.com/Nithilan10/buildai/internal/model"
	"github.com/Nithilan10/buildai/internal/ui/widgets"
)

var unitOptions = []string{
	string(model.UnitInches), string(model.UnitFeet), string(model.UnitMillimeters),
	string(model.UnitCentimeters), string(model.UnitMeters),
}

// planSurfaces converts DXF shapes to layout surfaces, labelling unnamed
// shapes and reporting which ones are not rectangles.
func planSurfaces(plan importer.PlanResult) ([]model.Surface, []string) {
	var out []model.Surface
	var notes []string
	for i, ps := range plan.Surfaces {
		s := ps.Surface
		if s.Label == "" {
			s.Label = fmt.Sprintf("Shape %d", i+1)
		}
		if !ps.Rectangular {
			notes = append(notes, fmt.Sprintf("%s is not rectangular; its bounding box is used", s.Label))
		}
		out = append(out, s)
	}
	return out, notes
}

func (a *App) buildSurfacesPanel() fyne.CanvasObject {
	a.surfacesContainer = container.NewVBox()

	l := &a.project.Layout
	widthEntry := widget.NewEntry()
	widthEntry.SetText(formatFloat(l.Width))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(formatFloat(l.Height))
	unitSelect := widget.NewSelect(unitOptions, nil)
	if l.Unit == "" {
		unitSelect.SetSelected(string(model.UnitInches))
	} else {
		unitSelect.SetSelected(string(l.Unit))
	}

	updateBtn := widget.NewButtonWithIcon("Update Layout", theme.ViewRefreshIcon(), func() {
		w, err := parsePositive("Tile width", widthEntry.Text)
		if err != nil {
			a.showError(err)
			return
		}
		h, err := parsePositive("Tile height", heightEntry.Text)
		if err != nil {
			a.showError(err)
			return
		}
		a.project.Layout = model.Tile{Width: w, Height: h, Unit: model.Unit(unitSelect.Selected)}
		a.refreshSurfaces()
	})
	updateBtn.Importance = widget.HighImportance

	controls := container.NewHBox(
		widget.NewLabel("Tile"), widthEntry, widget.NewLabel("x"), heightEntry, unitSelect,
		updateBtn,
		iconButton(theme.ContentAddIcon(), "Add surface", a.showAddSurfaceDialog),
		iconButton(theme.FolderOpenIcon(), "Import floor plan (DXF)", a.importFloorPlan),
		iconButton(theme.ContentClearIcon(), "Use room surfaces", func() {
			a.recordChange("Clear Surfaces")
			a.project.Surfaces = []model.Surface{}
			a.refreshSurfaces()
		}),
	)

	a.refreshSurfaces()
	return container.NewBorder(controls, nil, nil, nil, container.NewScroll(a.surfacesContainer))
}

func (a *App) refreshSurfaces() {
	if a.surfacesContainer == nil {
		return
	}
	a.surfacesContainer.RemoveAll()
	defer a.surfacesContainer.Refresh()

	surfaces := a.project.RoomSurfaces()
	if len(surfaces) == 0 {
		a.surfacesContainer.Add(widget.NewLabel("Enter room dimensions, add a surface or import a floor plan to see tile layouts."))
		return
	}

	layouts, err := engine.ComputeMultiSurfaceLayoutMode(surfaces, a.project.Layout, a.project.Settings.AllowPartial)
	if err != nil {
		a.surfacesContainer.Add(widget.NewLabel("Layout error: " + err.Error()))
		return
	}
	a.surfacesContainer.Add(widget.NewLabelWithStyle(
		fmt.Sprintf("%d surfaces, %d tiles", len(layouts), engine.TotalLayoutTiles(layouts)),
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	a.surfacesContainer.Add(widgets.RenderSurfaceLayouts(layouts, a.project.Layout))
}

func (a *App) showAddSurfaceDialog() {
	labelEntry := widget.NewEntry()
	widthEntry := widget.NewEntry()
	heightEntry := widget.NewEntry()
	unitSelect := widget.NewSelect(unitOptions, nil)
	unitSelect.SetSelected(string(model.UnitFeet))

	items := []*widget.FormItem{
		widget.NewFormItem("Label", labelEntry),
		widget.NewFormItem("Width", widthEntry),
		widget.NewFormItem("Height", heightEntry),
		widget.NewFormItem("Unit", unitSelect),
	}
	dialog.ShowForm("Add Surface", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		w, err := parsePositive("Width", widthEntry.Text)
		if err != nil {
			a.showError(err)
			return
		}
		h, err := parsePositive("Height", heightEntry.Text)
		if err != nil {
			a.showError(err)
			return
		}
		a.recordChange("Add Surface")
		a.project.Surfaces = append(a.project.Surfaces, model.Surface{
			Label:  strings.TrimSpace(labelEntry.Text),
			Width:  w,
			Height: h,
			Unit:   model.Unit(unitSelect.Selected),
		})
		a.refreshSurfaces()
	}, a.window)
}

func (a *App) importFloorPlan() {
	unitSelect := widget.NewSelect(unitOptions, nil)
	unitSelect.SetSelected(string(model.UnitMillimeters))

	dialog.ShowForm("Floor Plan Units", "Choose File...", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Drawing unit", unitSelect)},
		func(ok bool) {
			if !ok {
				return
			}
			unit := model.Unit(unitSelect.Selected)
			d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil || reader == nil {
					return
				}
				path := reader.URI().Path()
				reader.Close()
				a.applyFloorPlan(importer.ImportDXF(path, unit))
			}, a.window)
			d.Show()
		}, a.window)
}

func (a *App) applyFloorPlan(plan importer.PlanResult) {
	if len(plan.Surfaces) == 0 {
		msg := "no closed shapes found in drawing"
		if len(plan.Errors) > 0 {
			msg = strings.Join(plan.Errors, "\n")
		}
		dialog.ShowError(fmt.Errorf("floor plan import failed:\n%s", msg), a.window)
		return
	}
	surfaces, notes := planSurfaces(plan)
	a.recordChange("Import Floor Plan")
	a.project.Surfaces = append(a.project.Surfaces, surfaces...)
	a.refreshSurfaces()
	a.tabs.SelectIndex(tabSurfaces)

	notes = append(notes, plan.Warnings...)
	msg := fmt.Sprintf("Imported %d surfaces.", len(surfaces))
	if len(notes) > 0 {
		msg += "\n\n" + strings.Join(notes, "\n")
	}
	dialog.ShowInformation("Floor Plan Imported", msg, a.window)
}
