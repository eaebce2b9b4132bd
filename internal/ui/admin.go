package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Nithilan10/buildai/internal/project"
)

// showSettingsDialog edits the defaults applied to new projects.
func (a *App) showSettingsDialog() {
	cfg := a.config

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	currencyEntry := widget.NewEntry()
	currencyEntry.SetText(cfg.Currency)
	currencyEntry.OnChanged = func(text string) { cfg.Currency = text }

	tiered := widget.NewCheck("", func(b bool) { cfg.DefaultTieredWastage = b })
	tiered.SetChecked(cfg.DefaultTieredWastage)
	partial := widget.NewCheck("", func(b bool) { cfg.DefaultAllowPartial = b })
	partial.SetChecked(cfg.DefaultAllowPartial)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Auto-Save Interval (min, 0=off)", intEntry(&cfg.AutoSaveInterval)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Wastage (%)", floatEntry(&cfg.DefaultWastagePercent)),
		widget.NewFormItem("Per-Pattern Wastage", tiered),
		widget.NewFormItem("Default Tile Price", floatEntry(&cfg.DefaultUnitCost)),
		widget.NewFormItem("Default Tile Width (in)", floatEntry(&cfg.DefaultTileWidth)),
		widget.NewFormItem("Default Tile Height (in)", floatEntry(&cfg.DefaultTileHeight)),
		widget.NewFormItem("Count Cut Tiles", partial),
		widget.NewFormItem("Currency Symbol", currencyEntry),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.config = cfg
			a.app.Settings().SetTheme(newCompactTheme(cfg.Theme))
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Defaults apply to new projects.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 520))
	d.Show()
}

// showBackupDialog exports or restores settings and presets together.
func (a *App) showBackupDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(path, a.config, a.presets); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("buildai-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your settings and tile presets.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					if len(backup.Presets.Tiles) > 0 {
						a.presets = backup.Presets
						a.persistPresets()
					}
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					a.app.Settings().SetTheme(newCompactTheme(a.config.Theme))
					a.SetupMenus()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings and tile presets to a backup file,\nor restore them from a previous export."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
