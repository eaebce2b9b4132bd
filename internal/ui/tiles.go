package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"github.com/Nithilan10/buildai/internal/importer"
	"github.com/Nithilan10/buildai/internal/model"
)

var patternOptions = []string{"(none)", "straight", "simple", "complex"}

func patternLabel(c model.Complexity) string {
	if c == model.ComplexityUnspecified {
		return patternOptions[0]
	}
	return string(c)
}

func surfaceNames() []string {
	names := make([]string, len(model.SurfaceTags))
	for i, tag := range model.SurfaceTags {
		names[i] = tag.DisplayName()
	}
	return names
}

// tileSummary is the one-line description shown in the tile list.
func tileSummary(t model.PlacedTile) string {
	size := "size unknown"
	if t.Dimensions.Width > 0 && t.Dimensions.Height > 0 {
		size = fmt.Sprintf("%gx%g in", t.Dimensions.Width, t.Dimensions.Height)
	}
	price := "price unknown"
	if t.Price > 0 {
		price = fmt.Sprintf("$%.2f/tile", t.Price)
	}
	line := fmt.Sprintf("%s | %s | %s | %s", t.Name, t.Surface.DisplayName(), size, price)
	if t.Pattern != model.ComplexityUnspecified {
		line += " | " + string(t.Pattern)
	}
	return line
}

func (a *App) buildTilesPanel() fyne.CanvasObject {
	a.tilesContainer = container.NewVBox()
	a.refreshTiles()

	addBtn := widget.NewButtonWithIcon("Add Tile", theme.ContentAddIcon(), func() {
		a.showTileDialog(-1)
	})
	addBtn.Importance = widget.HighImportance

	importBtn := widget.NewButtonWithIcon("Import CSV/Excel", theme.FolderOpenIcon(), a.importTiles)

	header := container.NewHBox(
		widget.NewLabelWithStyle("Placed Tiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		importBtn,
		addBtn,
	)
	return container.NewBorder(header, nil, nil, nil, container.NewVScroll(a.tilesContainer))
}

func (a *App) refreshTiles() {
	if a.tilesContainer == nil {
		return
	}
	a.tilesContainer.RemoveAll()
	if len(a.project.Tiles) == 0 {
		a.tilesContainer.Add(widget.NewLabel("No tiles placed. Add a tile or import a product list."))
		a.tilesContainer.Refresh()
		return
	}
	for i, t := range a.project.Tiles {
		idx := i
		row := container.NewBorder(nil, nil, nil,
			container.NewHBox(
				iconButton(theme.DocumentCreateIcon(), "Edit tile", func() { a.showTileDialog(idx) }),
				iconButton(theme.ContentCopyIcon(), "Duplicate tile", func() {
					a.recordChange("Duplicate Tile")
					dup := a.project.Tiles[idx]
					dup.ID = uuid.New().String()[:8]
					a.project.Tiles = append(a.project.Tiles, dup)
					a.refreshTiles()
				}),
				iconButton(theme.DeleteIcon(), "Remove tile", func() {
					a.recordChange("Remove Tile")
					a.project.Tiles = append(a.project.Tiles[:idx], a.project.Tiles[idx+1:]...)
					a.refreshTiles()
				}),
			),
			widget.NewLabel(tileSummary(t)),
		)
		a.tilesContainer.Add(row)
	}
	a.tilesContainer.Refresh()
}

// showTileDialog edits the tile at idx, or adds a new one when idx < 0.
func (a *App) showTileDialog(idx int) {
	tile := model.NewPlacedTile("", 0, 0, model.SurfaceFloor, 0)
	title := "Add Tile"
	if idx >= 0 {
		tile = a.project.Tiles[idx]
		title = "Edit Tile"
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(tile.Name)
	widthEntry := widget.NewEntry()
	heightEntry := widget.NewEntry()
	priceEntry := widget.NewEntry()
	if tile.Dimensions.Width > 0 {
		widthEntry.SetText(formatFloat(tile.Dimensions.Width))
	}
	if tile.Dimensions.Height > 0 {
		heightEntry.SetText(formatFloat(tile.Dimensions.Height))
	}
	if tile.Price > 0 {
		priceEntry.SetText(formatFloat(tile.Price))
	}
	widthEntry.SetPlaceHolder("inches, empty if unknown")
	heightEntry.SetPlaceHolder("inches, empty if unknown")
	priceEntry.SetPlaceHolder("per tile, empty if unknown")

	surfaceSelect := widget.NewSelect(surfaceNames(), nil)
	surfaceSelect.SetSelected(tile.Surface.DisplayName())

	patternSelect := widget.NewSelect(patternOptions, nil)
	patternSelect.SetSelected(patternLabel(tile.Pattern))

	presetSelect := widget.NewSelect(a.presets.Names(), func(name string) {
		p := a.presets.FindByName(name)
		if p == nil {
			return
		}
		nameEntry.SetText(p.Name)
		widthEntry.SetText(formatFloat(p.Width))
		heightEntry.SetText(formatFloat(p.Height))
		priceEntry.SetText(formatFloat(p.Price))
	})
	presetSelect.PlaceHolder = "Fill from preset..."

	items := []*widget.FormItem{
		widget.NewFormItem("Preset", presetSelect),
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Width (in)", widthEntry),
		widget.NewFormItem("Height (in)", heightEntry),
		widget.NewFormItem("Price", priceEntry),
		widget.NewFormItem("Surface", surfaceSelect),
		widget.NewFormItem("Pattern", patternSelect),
	}

	d := dialog.NewForm(title, "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		updated, err := tileFromForm(tile, nameEntry.Text, widthEntry.Text, heightEntry.Text,
			priceEntry.Text, surfaceSelect.Selected, patternSelect.Selected)
		if err != nil {
			a.showError(err)
			return
		}
		a.recordChange(title)
		if idx >= 0 {
			a.project.Tiles[idx] = updated
		} else {
			a.project.Tiles = append(a.project.Tiles, updated)
		}
		a.project.Report = nil
		a.refreshTiles()
	}, a.window)
	d.Resize(fyne.NewSize(420, 420))
	d.Show()
}

// tileFromForm validates the dialog fields. Empty size or price fields mean
// unknown and fall back to the estimate defaults when the report is built.
func tileFromForm(base model.PlacedTile, name, width, height, price, surface, pattern string) (model.PlacedTile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return base, fmt.Errorf("tile name is required")
	}
	w, err := parseOptional("Width", width)
	if err != nil {
		return base, err
	}
	h, err := parseOptional("Height", height)
	if err != nil {
		return base, err
	}
	p, err := parseOptional("Price", price)
	if err != nil {
		return base, err
	}
	tag, err := model.ParseSurfaceTag(surface)
	if err != nil {
		return base, err
	}
	c := model.ComplexityUnspecified
	if pattern != patternOptions[0] {
		if c, err = model.ParseComplexity(pattern); err != nil {
			return base, err
		}
	}

	base.Name = name
	base.Dimensions = model.TileDimensions{Width: w, Height: h}
	base.Price = p
	base.Surface = tag
	base.Pattern = c
	return base, nil
}

func (a *App) importTiles() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		result := importer.ImportFile(path)
		if len(result.Errors) > 0 && len(result.Tiles) == 0 {
			dialog.ShowError(fmt.Errorf("import failed:\n%s", strings.Join(result.Errors, "\n")), a.window)
			return
		}
		a.recordChange("Import Tiles")
		a.project.Tiles = append(a.project.Tiles, result.Tiles...)
		a.project.Report = nil
		a.refreshTiles()

		msg := fmt.Sprintf("Imported %d tiles.", len(result.Tiles))
		if n := len(result.Warnings) + len(result.Errors); n > 0 {
			msg += "\n\n" + strings.Join(append(result.Errors, result.Warnings...), "\n")
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}, a.window)
	d.Show()
}
