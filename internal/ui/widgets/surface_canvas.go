package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Nithilan10/buildai/internal/model"
)

// Surface colors, cycled per surface.
var surfaceColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

var (
	cutColor    = color.NRGBA{R: 255, G: 205, B: 130, A: 220}
	groutColor  = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	uncutColor  = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	borderColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
)

// maxDrawnTiles caps the rectangles drawn per surface; beyond it the grid is
// drawn as one block with grout lines only.
const maxDrawnTiles = 2500

// SurfaceCanvas draws the tile grid of one surface: full tiles, cut edge
// strips (partial mode) or uncovered leftovers (full-tile mode).
type SurfaceCanvas struct {
	widget.BaseWidget
	layout    model.SurfaceUsage
	tile      model.Tile
	color     color.NRGBA
	maxWidth  float32
	maxHeight float32
}

func NewSurfaceCanvas(layout model.SurfaceUsage, tile model.Tile, index int, maxW, maxH float32) *SurfaceCanvas {
	sc := &SurfaceCanvas{
		layout:    layout,
		tile:      tile,
		color:     surfaceColors[index%len(surfaceColors)],
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	sc.ExtendBaseWidget(sc)
	return sc
}

func (sc *SurfaceCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newSurfaceCanvasRenderer(sc)
}

type surfaceCanvasRenderer struct {
	sc      *SurfaceCanvas
	objects []fyne.CanvasObject
}

func newSurfaceCanvasRenderer(sc *SurfaceCanvas) *surfaceCanvasRenderer {
	r := &surfaceCanvasRenderer{sc: sc}
	r.rebuild()
	return r
}

// Geometry of a layout in the tile's unit.
type gridGeometry struct {
	surfaceW, surfaceH float64
	tileW, tileH       float64
}

func geometryOf(l model.SurfaceUsage, tile model.Tile) gridGeometry {
	s := l.Surface.In(tile.Unit)
	return gridGeometry{surfaceW: s.Width, surfaceH: s.Height, tileW: tile.Width, tileH: tile.Height}
}

// fitScale returns the scale that fits w x h into maxW x maxH.
func fitScale(w, h float64, maxW, maxH float32) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	scale := maxW / float32(w)
	if s := maxH / float32(h); s < scale {
		scale = s
	}
	return scale
}

func (r *surfaceCanvasRenderer) rebuild() {
	r.objects = nil
	u := r.sc.layout.Usage
	g := geometryOf(r.sc.layout, r.sc.tile)
	scale := fitScale(g.surfaceW, g.surfaceH, r.sc.maxWidth, r.sc.maxHeight)
	canvasW := float32(g.surfaceW) * scale
	canvasH := float32(g.surfaceH) * scale

	bg := canvas.NewRectangle(uncutColor)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	tw := float32(g.tileW) * scale
	th := float32(g.tileH) * scale
	fullW := tw * float32(u.Columns)
	fullH := th * float32(u.Rows)

	if u.AllowPartial {
		// Edge strips are cut tiles; the full grid sits in the top-left corner.
		if fullW < canvasW {
			r.addRect(fullW, 0, canvasW-fullW, canvasH, cutColor)
		}
		if fullH < canvasH {
			r.addRect(0, fullH, fullW, canvasH-fullH, cutColor)
		}
	}

	if u.Rows*u.Columns <= maxDrawnTiles {
		for row := 0; row < u.Rows; row++ {
			for col := 0; col < u.Columns; col++ {
				r.addRect(float32(col)*tw, float32(row)*th, tw, th, r.sc.color)
			}
		}
	} else {
		r.addRect(0, 0, fullW, fullH, r.sc.color)
	}
	r.addGrout(tw, th, canvasW, canvasH, u)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = borderColor
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)

	if canvasW > 60 && canvasH > 20 {
		label := canvas.NewText(fmt.Sprintf("%d tiles", u.TotalTiles), color.Black)
		label.TextSize = 11
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.Move(fyne.NewPos(4, 2))
		r.objects = append(r.objects, label)
	}
}

func (r *surfaceCanvasRenderer) addRect(x, y, w, h float32, fill color.Color) {
	rect := canvas.NewRectangle(fill)
	rect.StrokeColor = groutColor
	rect.StrokeWidth = 0.5
	rect.Resize(fyne.NewSize(w, h))
	rect.Move(fyne.NewPos(x, y))
	r.objects = append(r.objects, rect)
}

// addGrout draws grid lines across the covered area. Partial layouts extend
// the lines to the surface edges.
func (r *surfaceCanvasRenderer) addGrout(tw, th, canvasW, canvasH float32, u model.TileUsage) {
	if tw < 3 || th < 3 {
		return
	}
	lineW, lineH := tw*float32(u.Columns), th*float32(u.Rows)
	if u.AllowPartial {
		lineW, lineH = canvasW, canvasH
	}
	for col := 1; col <= u.Columns; col++ {
		x := float32(col) * tw
		if x >= canvasW {
			break
		}
		line := canvas.NewLine(groutColor)
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(x, 0)
		line.Position2 = fyne.NewPos(x, lineH)
		r.objects = append(r.objects, line)
	}
	for row := 1; row <= u.Rows; row++ {
		y := float32(row) * th
		if y >= canvasH {
			break
		}
		line := canvas.NewLine(groutColor)
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(0, y)
		line.Position2 = fyne.NewPos(lineW, y)
		r.objects = append(r.objects, line)
	}
}

func (r *surfaceCanvasRenderer) Layout(size fyne.Size)        {}
func (r *surfaceCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *surfaceCanvasRenderer) Destroy()                     {}
func (r *surfaceCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *surfaceCanvasRenderer) MinSize() fyne.Size {
	g := geometryOf(r.sc.layout, r.sc.tile)
	scale := fitScale(g.surfaceW, g.surfaceH, r.sc.maxWidth, r.sc.maxHeight)
	return fyne.NewSize(float32(g.surfaceW)*scale, float32(g.surfaceH)*scale)
}

// LayoutHeader describes one layout for the label above its canvas.
func LayoutHeader(index int, l model.SurfaceUsage, tile model.Tile) string {
	name := l.Surface.Label
	if name == "" {
		name = fmt.Sprintf("Surface %d", index+1)
	}
	u := l.Usage
	text := fmt.Sprintf("%s (%g x %g %s): %d x %d grid, %d tiles",
		name, l.Surface.Width, l.Surface.Height, l.Surface.Unit, u.Columns, u.Rows, u.TotalTiles)
	if u.AllowPartial && u.CutTiles() > 0 {
		text += fmt.Sprintf(", %d cut", u.CutTiles())
	}
	if !u.AllowPartial && (u.LeftoverWidth > 0 || u.LeftoverHeight > 0) {
		text += fmt.Sprintf(", leftover %.2f x %.2f %s", u.LeftoverWidth, u.LeftoverHeight, tile.Unit)
	}
	return text
}

// RenderSurfaceLayouts creates a scrollable list of surface grids.
func RenderSurfaceLayouts(layouts []model.SurfaceUsage, tile model.Tile) fyne.CanvasObject {
	if len(layouts) == 0 {
		return widget.NewLabel("No surfaces yet. Enter room dimensions or import a floor plan.")
	}

	var items []fyne.CanvasObject
	total := 0
	for i, l := range layouts {
		header := widget.NewLabel(LayoutHeader(i, l, tile))
		header.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, header, NewSurfaceCanvas(l, tile, i, 600, 360), widget.NewSeparator())
		total += l.Usage.TotalTiles
	}

	summary := widget.NewLabel(fmt.Sprintf("Total: %d surfaces, %d tiles", len(layouts), total))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}
