package model

import (
	"math"

	"github.com/google/uuid"
)

// Surface is one planar region to be covered: a floor or a single wall.
type Surface struct {
	Label  string  `json:"label,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   Unit    `json:"unit,omitempty"` // Empty means "same unit as the tile"
}

// Area returns width * height in the surface's own unit squared.
func (s Surface) Area() float64 {
	return s.Width * s.Height
}

// In returns the surface converted to the target unit. A surface without a
// unit is returned unchanged.
func (s Surface) In(target Unit) Surface {
	if s.Unit == "" || target == "" || s.Unit == target {
		return s
	}
	return Surface{
		Label:  s.Label,
		Width:  Convert(s.Width, s.Unit, target),
		Height: Convert(s.Height, s.Unit, target),
		Unit:   target,
	}
}

// Validate reports a DimensionError when either side is not a positive number.
func (s Surface) Validate() error {
	if !positive(s.Width) {
		return &DimensionError{Field: "surface.width", Value: s.Width}
	}
	if !positive(s.Height) {
		return &DimensionError{Field: "surface.height", Value: s.Height}
	}
	if s.Unit != "" && !s.Unit.Valid() {
		return &DimensionError{Field: "surface.unit", Unit: s.Unit}
	}
	return nil
}

// Tile is the rectangular footprint of one tile or panel.
type Tile struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   Unit    `json:"unit,omitempty"`
}

// In returns the tile converted to the target unit.
func (t Tile) In(target Unit) Tile {
	if t.Unit == "" || target == "" || t.Unit == target {
		return t
	}
	return Tile{
		Width:  Convert(t.Width, t.Unit, target),
		Height: Convert(t.Height, t.Unit, target),
		Unit:   target,
	}
}

// Validate reports a DimensionError when either side is not a positive number.
func (t Tile) Validate() error {
	if !positive(t.Width) {
		return &DimensionError{Field: "tile.width", Value: t.Width}
	}
	if !positive(t.Height) {
		return &DimensionError{Field: "tile.height", Value: t.Height}
	}
	if t.Unit != "" && !t.Unit.Valid() {
		return &DimensionError{Field: "tile.unit", Unit: t.Unit}
	}
	return nil
}

// TileUsage is the layout of one tile over one surface.
type TileUsage struct {
	Rows           int     `json:"rows"`
	Columns        int     `json:"columns"`
	TotalTiles     int     `json:"totalTiles"`
	LeftoverWidth  float64 `json:"leftoverWidth"`
	LeftoverHeight float64 `json:"leftoverHeight"`
	AllowPartial   bool    `json:"allowPartial"`
}

// FullTiles returns the number of uncut tiles in the layout.
func (u TileUsage) FullTiles() int {
	return u.Rows * u.Columns
}

// CutTiles returns how many tiles in the layout are trimmed at an edge.
// Always zero in full-tile mode.
func (u TileUsage) CutTiles() int {
	if !u.AllowPartial {
		return 0
	}
	return u.TotalTiles - u.FullTiles()
}

// SurfaceUsage pairs a surface with its computed layout.
type SurfaceUsage struct {
	Surface Surface   `json:"surface"`
	Usage   TileUsage `json:"usage"`
}

// TileDimensions is a product footprint in inches.
type TileDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlacedTile is one product applied to one surface of a room.
type PlacedTile struct {
	ID         string         `json:"id,omitempty"`
	Name       string         `json:"name"`
	Dimensions TileDimensions `json:"dimensions"`
	Surface    SurfaceTag     `json:"surface"`
	Price      float64        `json:"price,omitempty"`   // Per tile; zero means unknown
	Pattern    Complexity     `json:"pattern,omitempty"` // Installation complexity, optional
}

// NewPlacedTile creates a placed tile with a generated ID.
func NewPlacedTile(name string, width, height float64, surface SurfaceTag, price float64) PlacedTile {
	return PlacedTile{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Dimensions: TileDimensions{Width: width, Height: height},
		Surface:    surface,
		Price:      price,
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
