// buildai desktop: tile layout and wastage planner for a single room.
//
// Build:
//   go build -o buildai-desktop ./cmd/buildai-desktop
//
// Using fyne-cross for packaged builds:
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/Nithilan10/buildai/internal/ui"
)

func main() {
	application := app.NewWithID("com.nithilan10.buildai")
	window := application.NewWindow("buildai - Untitled")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1100, 760))
	window.CenterOnScreen()

	appUI.StartAutoSave()
	window.SetOnClosed(appUI.StopAutoSave)
	window.ShowAndRun()
}
