// Package ui implements the buildai desktop application.
package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"github.com/Nithilan10/buildai/internal/buildinfo"
	"github.com/Nithilan10/buildai/internal/model"
	"github.com/Nithilan10/buildai/internal/project"
)

const maxRecentProjects = 10

// Tab indices.
const (
	tabRoom = iota
	tabTiles
	tabSurfaces
	tabReport
)

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	project model.Project
	path    string // current project file, empty until saved
	config  model.AppConfig
	presets model.Presets
	history *History
	tabs    *container.AppTabs
	stop    chan struct{} // closes the auto-save loop

	presetsPath string

	// UI references for dynamic updates
	roomForm          *roomForm
	tilesContainer    *fyne.Container
	surfacesContainer *fyne.Container
	reportContainer   *fyne.Container
}

// NewApp loads preferences and presets and starts an empty project.
func NewApp(application fyne.App, window fyne.Window) *App {
	a := &App{
		app:     application,
		window:  window,
		history: NewHistory(),
	}

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg

	presets, path, err := project.LoadOrCreatePresets()
	if err != nil {
		presets = model.DefaultPresets()
	}
	a.presets = presets
	a.presetsPath = path

	a.project = a.newProject()
	application.Settings().SetTheme(newCompactTheme(cfg.Theme))
	return a
}

func (a *App) newProject() model.Project {
	p := model.NewProject()
	a.config.ApplyToSettings(&p.Settings)
	return p
}

// SetupMenus creates the native menu bar.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	recent.ChildMenu = a.recentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", a.resetProject),
		fyne.NewMenuItem("Open Project...", a.loadProject),
		recent,
		fyne.NewMenuItem("Save Project", a.saveProject),
		fyne.NewMenuItem("Save Project As...", a.saveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Tiles (CSV/Excel)...", a.importTiles),
		fyne.NewMenuItem("Import Floor Plan (DXF)...", a.importFloorPlan),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", a.exportPDF),
		fyne.NewMenuItem("Export Excel Workbook...", a.exportExcel),
		fyne.NewMenuItem("Export Order Labels...", a.exportLabels),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Placed Tiles", func() {
			a.recordChange("Clear Tiles")
			a.project.Tiles = []model.PlacedTile{}
			a.refreshTiles()
		}),
		fyne.NewMenuItem("Clear Imported Surfaces", func() {
			a.recordChange("Clear Surfaces")
			a.project.Surfaces = []model.Surface{}
			a.refreshSurfaces()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Calculate Wastage", func() {
			a.calculate()
			a.tabs.SelectIndex(tabReport)
		}),
		fyne.NewMenuItem("Tile Presets...", a.showPresetsDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Backup / Restore...", a.showBackupDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

func (a *App) recentMenu() *fyne.Menu {
	var items []*fyne.MenuItem
	for _, path := range a.config.RecentProjects {
		p := path
		items = append(items, fyne.NewMenuItem(p, func() { a.openProject(p) }))
	}
	if len(items) == 0 {
		none := fyne.NewMenuItem("No recent projects", nil)
		none.Disabled = true
		items = append(items, none)
	}
	return fyne.NewMenu("", items...)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation("About buildai",
		"buildai tile planner\n\n"+
			"Estimates tile layouts, wastage and cost for the\n"+
			"floor and walls of a room.\n\n"+
			buildinfo.String(),
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.tabs = container.NewAppTabs(
		container.NewTabItem("Room", a.buildRoomPanel()),
		container.NewTabItem("Tiles", a.buildTilesPanel()),
		container.NewTabItem("Surfaces", a.buildSurfacesPanel()),
		container.NewTabItem("Report", a.buildReportPanel()),
	)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.tabs.OnSelected = func(item *container.TabItem) {
		if item.Text == "Surfaces" {
			a.refreshSurfaces()
		}
	}
	return a.tabs
}

// refreshAll rebuilds the panels whose entries are filled from the project
// and refreshes the others.
func (a *App) refreshAll() {
	a.tabs.Items[tabRoom].Content = a.buildRoomPanel()
	a.tabs.Items[tabSurfaces].Content = a.buildSurfacesPanel()
	a.tabs.Refresh()
	a.refreshTiles()
	a.refreshReport()
	a.updateTitle()
}

func (a *App) updateTitle() {
	a.window.SetTitle(fmt.Sprintf("buildai - %s", a.project.Name))
}

// recordChange saves the current tiles and surfaces for undo.
func (a *App) recordChange(label string) {
	a.history.Push(MakeSnapshot(a.project.Tiles, a.project.Surfaces, label))
}

func (a *App) current(label string) Snapshot {
	return MakeSnapshot(a.project.Tiles, a.project.Surfaces, label)
}

func (a *App) restore(s Snapshot) {
	a.project.Tiles = s.Tiles
	if a.project.Tiles == nil {
		a.project.Tiles = []model.PlacedTile{}
	}
	a.project.Surfaces = s.Surfaces
	if a.project.Surfaces == nil {
		a.project.Surfaces = []model.Surface{}
	}
	a.project.Report = nil
	a.refreshAll()
}

func (a *App) undo() {
	if s, ok := a.history.Undo(a.current("")); ok {
		a.restore(s)
	}
}

func (a *App) redo() {
	if s, ok := a.history.Redo(a.current("")); ok {
		a.restore(s)
	}
}

// ─── Project files ─────────────────────────────────────────

func (a *App) resetProject() {
	a.project = a.newProject()
	a.path = ""
	a.history.Clear()
	a.refreshAll()
}

func (a *App) saveProject() {
	if a.path == "" {
		a.saveProjectAs()
		return
	}
	a.writeProject(a.path)
}

func (a *App) saveProjectAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := project.EnsureExtension(writer.URI().Path())
		writer.Close()
		a.writeProject(path)
	}, a.window)
	d.SetFileName(a.project.Name + project.FileExtension)
	d.Show()
}

func (a *App) writeProject(path string) {
	if err := a.roomForm.apply(&a.project); err != nil {
		a.showError(err)
		return
	}
	if err := project.Save(path, a.project); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.path = path
	a.rememberRecent(path)
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.openProject(path)
	}, a.window)
	d.Show()
}

func (a *App) openProject(path string) {
	proj, err := project.Load(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.project = proj
	a.path = path
	a.history.Clear()
	a.rememberRecent(path)
	a.refreshAll()
}

func (a *App) rememberRecent(path string) {
	a.config.AddRecentProject(path, maxRecentProjects)
	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save recent projects: %w", err), a.window)
	}
	a.SetupMenus()
}

// StartAutoSave saves the project every AutoSaveInterval minutes once it has
// a file. It is a no-op when the interval is zero.
func (a *App) StartAutoSave() {
	if a.config.AutoSaveInterval <= 0 || a.stop != nil {
		return
	}
	a.stop = make(chan struct{})
	ticker := time.NewTicker(time.Duration(a.config.AutoSaveInterval) * time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-a.stop:
				return
			case <-ticker.C:
				fyne.Do(func() {
					if a.path != "" {
						_ = project.Save(a.path, a.project)
					}
				})
			}
		}
	}()
}

// StopAutoSave ends the loop started by StartAutoSave.
func (a *App) StopAutoSave() {
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
}
