package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/Nithilan10/buildai/internal/model"
)

// WastageOptions configures ComputeWastageReportWithOptions.
type WastageOptions struct {
	Policy             model.WastagePolicy
	FallbackUnitCost   float64
	FallbackTileWidth  float64 // inches
	FallbackTileHeight float64 // inches
	Advice             model.Advice
}

// DefaultWastageOptions is the baseline: flat 10%, $5 per tile, 12x12 in tiles.
func DefaultWastageOptions() WastageOptions {
	return WastageOptions{
		Policy:             model.FlatWastagePolicy(),
		FallbackUnitCost:   model.FallbackUnitCost,
		FallbackTileWidth:  model.FallbackTileWidth,
		FallbackTileHeight: model.FallbackTileHeight,
		Advice:             model.DefaultAdvice(),
	}
}

// OptionsFromSettings builds options from a project's estimate settings.
func OptionsFromSettings(s model.EstimateSettings) WastageOptions {
	opts := DefaultWastageOptions()
	opts.Policy = s.Policy()
	if s.FallbackUnitCost > 0 {
		opts.FallbackUnitCost = s.FallbackUnitCost
	}
	if s.FallbackTileWidth > 0 {
		opts.FallbackTileWidth = s.FallbackTileWidth
	}
	if s.FallbackTileHeight > 0 {
		opts.FallbackTileHeight = s.FallbackTileHeight
	}
	return opts
}

// ComputeWastageReport estimates tiles and cost for every placed tile using
// DefaultWastageOptions.
func ComputeWastageReport(room *model.RoomDimensions, tiles []model.PlacedTile) (*model.WastageReport, error) {
	return ComputeWastageReportWithOptions(room, tiles, DefaultWastageOptions())
}

// ComputeWastageReportWithOptions estimates tiles and cost for every placed
// tile.
//
// Unlike ComputeTileLayout this works on aggregate area: the surface area is
// converted to square inches and divided by the tile area, rounding up. The
// policy's percentage is then added on top and rounded up again. No grid
// orientation is assumed, so counts can differ from a grid layout of the
// same surface.
func ComputeWastageReportWithOptions(room *model.RoomDimensions, tiles []model.PlacedTile, opts WastageOptions) (*model.WastageReport, error) {
	if room == nil {
		return nil, model.ErrMissingRoomDimensions
	}
	if len(tiles) == 0 {
		return nil, model.ErrEmptyTileList
	}
	if err := room.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Policy.Validate(); err != nil {
		return nil, err
	}

	report := &model.WastageReport{
		Surfaces:         make([]model.SurfaceEstimate, 0, len(tiles)),
		Recommendations:  append([]string(nil), opts.Advice.Recommendations...),
		InstallationTips: append([]string(nil), opts.Advice.InstallationTips...),
	}

	var weightedPercent float64
	for i, tile := range tiles {
		est, err := estimateSurface(*room, tile, opts)
		if err != nil {
			return nil, fmt.Errorf("placed tile %d (%s): %w", i, tile.Name, err)
		}
		report.Surfaces = append(report.Surfaces, est)
		report.Summary.TotalTilesNeeded += est.TilesNeeded
		report.Summary.TotalTiles += est.TotalTilesWithWastage
		report.Summary.TotalCost += est.CostEstimate
		weightedPercent += est.WastagePercentage * float64(est.TilesNeeded)
	}

	pct := opts.Policy.DefaultPercent
	if report.Summary.TotalTilesNeeded > 0 {
		pct = round2(weightedPercent / float64(report.Summary.TotalTilesNeeded))
	}
	report.Summary.TotalWastagePercentage = pct
	report.TotalWastage = model.TotalWastage{
		Percentage: pct,
		Reasoning:  reportReasoning(opts.Policy, pct),
	}
	return report, nil
}

func estimateSurface(room model.RoomDimensions, tile model.PlacedTile, opts WastageOptions) (model.SurfaceEstimate, error) {
	surface, err := room.Surface(tile.Surface)
	if err != nil {
		return model.SurfaceEstimate{}, err
	}

	width, height, assumed, err := tileSize(tile, opts)
	if err != nil {
		return model.SurfaceEstimate{}, err
	}

	areaSqFt := surface.Area()
	areaSqIn := model.SquareFeetToSquareInches(areaSqFt)
	tileAreaSqIn := width * height
	q := areaSqIn / tileAreaSqIn
	if tooMany(q) {
		return model.SurfaceEstimate{}, tooManyError(string(tile.Surface))
	}
	needed := ceilInt(q)

	pct := opts.Policy.PercentFor(tile.Pattern)
	if tooMany(float64(needed) * (100 + pct) / 100) {
		return model.SurfaceEstimate{}, tooManyError(string(tile.Surface))
	}
	withWastage := applyWastage(needed, pct)

	unitCost := tile.Price
	if unitCost <= 0 {
		unitCost = opts.FallbackUnitCost
	}

	return model.SurfaceEstimate{
		Surface:               tile.Surface,
		SurfaceName:           tile.Surface.DisplayName(),
		Name:                  tile.Name,
		Dimensions:            fmt.Sprintf("%g x %g ft", surface.Width, surface.Height),
		TileSize:              fmt.Sprintf("%g x %g inches", width, height),
		SurfaceAreaSqFt:       areaSqFt,
		SurfaceAreaSqIn:       areaSqIn,
		TileAreaSqIn:          tileAreaSqIn,
		TileSizeAssumed:       assumed,
		TilesNeeded:           needed,
		WastagePercentage:     pct,
		WastageReasoning:      opts.Policy.Reasoning(tile.Pattern),
		TotalTilesWithWastage: withWastage,
		UnitCost:              unitCost,
		CostEstimate:          round2(float64(withWastage) * unitCost),
	}, nil
}

// tileSize resolves the tile footprint, substituting the fallback size for a
// missing (zero) side. Negative sides are rejected.
func tileSize(tile model.PlacedTile, opts WastageOptions) (w, h float64, assumed bool, err error) {
	w, h = tile.Dimensions.Width, tile.Dimensions.Height
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, 0, false, &model.DimensionError{Field: "dimensions.width", Value: w}
	}
	if h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, 0, false, &model.DimensionError{Field: "dimensions.height", Value: h}
	}
	if w == 0 {
		w, assumed = opts.FallbackTileWidth, true
	}
	if h == 0 {
		h, assumed = opts.FallbackTileHeight, true
	}
	if w <= 0 || h <= 0 {
		return 0, 0, false, &model.DimensionError{Field: "fallback tile size", Value: math.Min(w, h)}
	}
	return w, h, assumed, nil
}

// applyWastage returns ceil(needed * (1 + pct/100)). The product is formed as
// needed*(100+pct)/100 so whole percentages stay exact.
func applyWastage(needed int, pct float64) int {
	return ceilInt(float64(needed) * (100 + pct) / 100)
}

func ceilInt(v float64) int {
	return int(math.Ceil(v - epsilon*math.Max(1, math.Abs(v))))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func reportReasoning(p model.WastagePolicy, pct float64) string {
	if len(p.ByComplexity) > 0 {
		return fmt.Sprintf("Weighted wastage of %.2f%% across installation patterns", pct)
	}
	if pct == model.DefaultWastagePercent {
		return "Standard wastage calculation with 10% buffer for cuts and breakage"
	}
	return fmt.Sprintf("Standard wastage calculation with %g%% buffer for cuts and breakage", pct)
}

// IsValidationError reports whether err is one of the calculator's input
// validation failures.
func IsValidationError(err error) bool {
	return errors.Is(err, model.ErrInvalidDimension) ||
		errors.Is(err, model.ErrMissingRoomDimensions) ||
		errors.Is(err, model.ErrEmptyTileList) ||
		errors.Is(err, model.ErrUnknownSurface)
}
