package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Nithilan10/buildai/internal/model"
	"github.com/Nithilan10/buildai/internal/project"
)

// showPresetsDialog manages the tile preset catalog.
func (a *App) showPresetsDialog() {
	list := container.NewVBox()
	var refresh func()

	refresh = func() {
		list.RemoveAll()
		if len(a.presets.Tiles) == 0 {
			list.Add(widget.NewLabel("No presets. Add one or import a presets file."))
		}
		for i, tp := range a.presets.Tiles {
			idx := i
			price := "no price"
			if tp.Price > 0 {
				price = fmt.Sprintf("$%.2f", tp.Price)
			}
			row := container.NewBorder(nil, nil, nil,
				container.NewHBox(
					iconButton(theme.ContentAddIcon(), "Place on floor", func() {
						a.recordChange("Add Tile")
						a.project.Tiles = append(a.project.Tiles, a.presets.Tiles[idx].ToPlacedTile(model.SurfaceFloor))
						a.project.Report = nil
						a.refreshTiles()
					}),
					iconButton(theme.DocumentCreateIcon(), "Edit preset", func() {
						a.showPresetEditor(idx, refresh)
					}),
					iconButton(theme.DeleteIcon(), "Delete preset", func() {
						a.presets.Tiles = append(a.presets.Tiles[:idx], a.presets.Tiles[idx+1:]...)
						a.persistPresets()
						refresh()
					}),
				),
				widget.NewLabel(fmt.Sprintf("%s  %s  %s", tp.Label(), tp.Material, price)),
			)
			list.Add(row)
		}
		list.Refresh()
	}
	refresh()

	addBtn := widget.NewButtonWithIcon("Add Preset", theme.ContentAddIcon(), func() {
		a.showPresetEditor(-1, refresh)
	})
	importBtn := widget.NewButton("Import...", func() {
		d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			path := reader.URI().Path()
			reader.Close()
			merged, added, err := project.ImportPresets(path, a.presets)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.presets = merged
			a.persistPresets()
			refresh()
			dialog.ShowInformation("Presets Imported", fmt.Sprintf("Added %d presets.", added), a.window)
		}, a.window)
		d.Show()
	})
	exportBtn := widget.NewButton("Export...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportPresets(path, a.presets); err != nil {
				dialog.ShowError(err, a.window)
			}
		}, a.window)
		d.SetFileName("buildai-presets.json")
		d.Show()
	})

	content := container.NewBorder(
		container.NewHBox(addBtn, importBtn, exportBtn), nil, nil, nil,
		container.NewVScroll(list),
	)
	d := dialog.NewCustom("Tile Presets", "Close", content, a.window)
	d.Resize(fyne.NewSize(640, 480))
	d.Show()
}

// showPresetEditor edits preset idx, or adds one when idx < 0.
func (a *App) showPresetEditor(idx int, onSaved func()) {
	var tp model.TilePreset
	if idx >= 0 {
		tp = a.presets.Tiles[idx]
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(tp.Name)
	materialEntry := widget.NewEntry()
	materialEntry.SetText(tp.Material)
	widthEntry := widget.NewEntry()
	heightEntry := widget.NewEntry()
	priceEntry := widget.NewEntry()
	if idx >= 0 {
		widthEntry.SetText(formatFloat(tp.Width))
		heightEntry.SetText(formatFloat(tp.Height))
		priceEntry.SetText(formatFloat(tp.Price))
	}

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Material", materialEntry),
		widget.NewFormItem("Width (in)", widthEntry),
		widget.NewFormItem("Height (in)", heightEntry),
		widget.NewFormItem("Price", priceEntry),
	}
	dialog.ShowForm("Tile Preset", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		updated, err := presetFromForm(tp, nameEntry.Text, materialEntry.Text, widthEntry.Text, heightEntry.Text, priceEntry.Text)
		if err != nil {
			a.showError(err)
			return
		}
		if idx >= 0 {
			a.presets.Tiles[idx] = updated
		} else {
			a.presets.Tiles = append(a.presets.Tiles, updated)
		}
		a.persistPresets()
		onSaved()
	}, a.window)
}

// presetFromForm validates the editor fields. Presets always carry a size.
func presetFromForm(base model.TilePreset, name, material, width, height, price string) (model.TilePreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return base, fmt.Errorf("preset name is required")
	}
	w, err := parsePositive("Width", width)
	if err != nil {
		return base, err
	}
	h, err := parsePositive("Height", height)
	if err != nil {
		return base, err
	}
	p, err := parseOptional("Price", price)
	if err != nil {
		return base, err
	}
	if base.ID == "" {
		base = model.NewTilePreset(name, w, h, strings.TrimSpace(material), p)
		return base, nil
	}
	base.Name = name
	base.Material = strings.TrimSpace(material)
	base.Width = w
	base.Height = h
	base.Price = p
	return base, nil
}

func (a *App) persistPresets() {
	if a.presetsPath == "" {
		return
	}
	if err := project.SavePresets(a.presetsPath, a.presets); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), a.window)
	}
}
