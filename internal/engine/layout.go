// Package engine implements the tile coverage calculator: grid layouts of a
// tile over a surface and the area-based wastage/cost report for a room.
//
// Every function in this package is pure. Nothing is logged or cached and
// all functions are safe for concurrent use.
package engine

import (
	"fmt"
	"math"

	"github.com/Nithilan10/buildai/internal/model"
)

// epsilon absorbs floating point noise in divisions, so that 0.9/0.3 lays
// exactly three tiles instead of two.
const epsilon = 1e-9

// MaxTiles bounds every tile count the calculator returns. Larger layouts
// are rejected rather than overflowing int arithmetic.
const MaxTiles = math.MaxInt32

// tooMany reports a count quotient that is not a finite number within
// MaxTiles.
func tooMany(q float64) bool {
	return !(q <= MaxTiles)
}

func tooManyError(field string) error {
	return &model.DimensionError{Field: field, Issue: fmt.Sprintf("needs more than %d tiles", MaxTiles)}
}

// fitCount returns how many whole units fit in length.
func fitCount(length, unit float64) int {
	return int(math.Floor(length/unit + epsilon))
}

// coverCount returns how many units, the last one possibly cut, cover length.
func coverCount(length, unit float64) int {
	return int(math.Ceil(length/unit - epsilon))
}

// leftover is the strip of length not covered by n whole units.
func leftover(length, unit float64, n int) float64 {
	rest := length - float64(n)*unit
	if rest < epsilon*math.Max(1, length) {
		return 0
	}
	return rest
}

// ComputeTileLayout lays tile over surface in a grid.
//
// In full-tile mode only whole tiles count: TotalTiles is Rows*Columns and
// the leftovers are the uncovered strips along the far edges. With
// allowPartial every partially covered edge cell consumes one more tile, so
// TotalTiles is ceil(W/tw)*ceil(H/th); Rows, Columns and leftovers still
// report the whole-tile grid.
//
// When both carry a unit the surface is converted to the tile's unit first.
// A surface with a unit needs a tile with a unit. Non-positive dimensions,
// missing tile units and layouts of more than MaxTiles tiles fail with
// model.ErrInvalidDimension.
func ComputeTileLayout(surface model.Surface, tile model.Tile, allowPartial bool) (model.TileUsage, error) {
	if err := surface.Validate(); err != nil {
		return model.TileUsage{}, err
	}
	if err := tile.Validate(); err != nil {
		return model.TileUsage{}, err
	}
	if surface.Unit != "" && tile.Unit == "" {
		return model.TileUsage{}, &model.DimensionError{
			Field: "tile.unit",
			Issue: fmt.Sprintf("is required when the surface is in %s", surface.Unit),
		}
	}
	surface = surface.In(tile.Unit)

	cover := math.Ceil(surface.Width/tile.Width-epsilon) * math.Ceil(surface.Height/tile.Height-epsilon)
	if tooMany(cover) {
		return model.TileUsage{}, tooManyError("surface")
	}

	rows := fitCount(surface.Height, tile.Height)
	columns := fitCount(surface.Width, tile.Width)

	usage := model.TileUsage{
		Rows:           rows,
		Columns:        columns,
		TotalTiles:     rows * columns,
		LeftoverWidth:  leftover(surface.Width, tile.Width, columns),
		LeftoverHeight: leftover(surface.Height, tile.Height, rows),
		AllowPartial:   allowPartial,
	}
	if allowPartial {
		usage.TotalTiles = coverCount(surface.Width, tile.Width) * coverCount(surface.Height, tile.Height)
	}
	return usage, nil
}

// ComputeMultiSurfaceLayout runs ComputeTileLayout in full-tile mode over each
// surface independently. Results are in input order.
func ComputeMultiSurfaceLayout(surfaces []model.Surface, tile model.Tile) ([]model.SurfaceUsage, error) {
	return ComputeMultiSurfaceLayoutMode(surfaces, tile, false)
}

// ComputeMultiSurfaceLayoutMode is ComputeMultiSurfaceLayout with an explicit
// partial-tile mode.
func ComputeMultiSurfaceLayoutMode(surfaces []model.Surface, tile model.Tile, allowPartial bool) ([]model.SurfaceUsage, error) {
	out := make([]model.SurfaceUsage, len(surfaces))
	for i, s := range surfaces {
		usage, err := ComputeTileLayout(s, tile, allowPartial)
		if err != nil {
			return nil, fmt.Errorf("surface %d: %w", i, err)
		}
		out[i] = model.SurfaceUsage{Surface: s, Usage: usage}
	}
	return out, nil
}

// TotalLayoutTiles sums TotalTiles across layouts.
func TotalLayoutTiles(layouts []model.SurfaceUsage) int {
	total := 0
	for _, l := range layouts {
		total += l.Usage.TotalTiles
	}
	return total
}
