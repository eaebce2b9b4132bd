package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Nithilan10/buildai/internal/model"
)

// roomForm binds the room dimension entries to the project.
type roomForm struct {
	name   *widget.Entry
	width  *widget.Entry
	depth  *widget.Entry
	height *widget.Entry
}

func newRoomForm() *roomForm {
	f := &roomForm{
		name:   widget.NewEntry(),
		width:  widget.NewEntry(),
		depth:  widget.NewEntry(),
		height: widget.NewEntry(),
	}
	f.width.SetPlaceHolder("e.g. 12")
	f.depth.SetPlaceHolder("e.g. 10")
	f.height.SetPlaceHolder("e.g. 8")
	return f
}

func (f *roomForm) load(p model.Project) {
	f.name.SetText(p.Name)
	if p.Room == nil {
		f.width.SetText("")
		f.depth.SetText("")
		f.height.SetText("")
		return
	}
	f.width.SetText(formatFloat(p.Room.Width))
	f.depth.SetText(formatFloat(p.Room.Depth))
	f.height.SetText(formatFloat(p.Room.Height))
}

// apply copies the entries into p. Empty dimensions clear the room;
// invalid ones leave it unchanged and return the error.
func (f *roomForm) apply(p *model.Project) error {
	if name := strings.TrimSpace(f.name.Text); name != "" {
		p.Name = name
	}
	room, err := parseRoom(f.width.Text, f.depth.Text, f.height.Text)
	if err != nil {
		return err
	}
	p.Room = room
	return nil
}

// parseRoom returns nil when all three fields are empty.
func parseRoom(w, d, h string) (*model.RoomDimensions, error) {
	if strings.TrimSpace(w+d+h) == "" {
		return nil, nil
	}
	width, err := parsePositive("Width", w)
	if err != nil {
		return nil, err
	}
	depth, err := parsePositive("Depth", d)
	if err != nil {
		return nil, err
	}
	height, err := parsePositive("Height", h)
	if err != nil {
		return nil, err
	}
	return &model.RoomDimensions{Width: width, Depth: depth, Height: height}, nil
}

func parsePositive(field, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a number greater than 0", field)
	}
	return v, nil
}

// parseOptional returns 0 for empty text and rejects negative values.
func parseOptional(field, text string) (float64, error) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "$"))
	if text == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be empty or a number of at least 0", field)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (a *App) buildRoomPanel() *container.Scroll {
	a.roomForm = newRoomForm()
	a.roomForm.load(a.project)

	applyBtn := widget.NewButton("Apply Room", func() {
		if err := a.roomForm.apply(&a.project); err != nil {
			a.showError(err)
			return
		}
		a.project.Report = nil
		a.updateTitle()
		a.refreshSurfaces()
		a.refreshReport()
	})
	applyBtn.Importance = widget.HighImportance

	roomCard := widget.NewCard("Room", "Dimensions in feet from the room analysis", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Project Name", a.roomForm.name),
			widget.NewFormItem("Width (ft)", a.roomForm.width),
			widget.NewFormItem("Depth (ft)", a.roomForm.depth),
			widget.NewFormItem("Height (ft)", a.roomForm.height),
		),
		applyBtn,
	))

	return container.NewVScroll(container.NewVBox(roomCard, a.buildEstimateSettingsCard()))
}

func (a *App) buildEstimateSettingsCard() *widget.Card {
	s := &a.project.Settings

	tiered := widget.NewCheck("Per-pattern wastage (straight 10%, complex 15%, simple 5%)", func(b bool) {
		s.TieredWastage = b
	})
	tiered.SetChecked(s.TieredWastage)

	partial := widget.NewCheck("Count cut tiles at the edges of surface grids", func(b bool) {
		s.AllowPartial = b
		a.refreshSurfaces()
	})
	partial.SetChecked(s.AllowPartial)

	return widget.NewCard("Estimate", "", container.NewGridWithColumns(2,
		widget.NewLabel("Default Wastage (%)"), floatEntry(&s.WastagePercent),
		widget.NewLabel("Price When Unknown (per tile)"), floatEntry(&s.FallbackUnitCost),
		widget.NewLabel("Tile Width When Unknown (in)"), floatEntry(&s.FallbackTileWidth),
		widget.NewLabel("Tile Height When Unknown (in)"), floatEntry(&s.FallbackTileHeight),
		widget.NewLabel("Pattern Wastage"), tiered,
		widget.NewLabel("Surface Grids"), partial,
	))
}

// floatEntry writes every valid non-negative value typed into it to val.
func floatEntry(val *float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(formatFloat(*val))
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil && v >= 0 {
			*val = v
		}
	}
	return e
}

func intEntry(val *int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(*val))
	e.OnChanged = func(text string) {
		if v, err := strconv.Atoi(strings.TrimSpace(text)); err == nil && v >= 0 {
			*val = v
		}
	}
	return e
}
