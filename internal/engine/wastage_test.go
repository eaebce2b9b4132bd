package engine

import (
	"testing"

	"github.com/Nithilan10/buildai/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floorTile(w, h float64) model.PlacedTile {
	return model.PlacedTile{Name: "Ceramic", Dimensions: model.TileDimensions{Width: w, Height: h}, Surface: model.SurfaceFloor}
}

func TestComputeWastageReport_SingleFloor(t *testing.T) {
	room := &model.RoomDimensions{Width: 8, Depth: 6, Height: 8}

	report, err := ComputeWastageReport(room, []model.PlacedTile{floorTile(12, 12)})
	require.NoError(t, err)
	require.Len(t, report.Surfaces, 1)

	s := report.Surfaces[0]
	assert.Equal(t, model.SurfaceFloor, s.Surface)
	assert.Equal(t, "Floor", s.SurfaceName)
	assert.Equal(t, 48.0, s.SurfaceAreaSqFt)
	assert.Equal(t, 6912.0, s.SurfaceAreaSqIn)
	assert.Equal(t, 144.0, s.TileAreaSqIn)
	assert.Equal(t, 48, s.TilesNeeded)
	assert.Equal(t, 10.0, s.WastagePercentage)
	assert.Equal(t, 53, s.TotalTilesWithWastage)
	assert.Equal(t, 5, s.ExtraTiles())
	assert.Equal(t, 5.0, s.UnitCost)
	assert.Equal(t, 265.0, s.CostEstimate)
	assert.Equal(t, "8 x 6 ft", s.Dimensions)
	assert.Equal(t, "12 x 12 inches", s.TileSize)
	assert.False(t, s.TileSizeAssumed)

	assert.Equal(t, 48, report.Summary.TotalTilesNeeded)
	assert.Equal(t, 53, report.Summary.TotalTiles)
	assert.Equal(t, 265.0, report.Summary.TotalCost)
	assert.Equal(t, 10.0, report.Summary.TotalWastagePercentage)
	assert.Equal(t, 10.0, report.TotalWastage.Percentage)
	assert.NotEmpty(t, report.TotalWastage.Reasoning)
	assert.Equal(t, model.DefaultAdvice().Recommendations, report.Recommendations)
	assert.Equal(t, model.DefaultAdvice().InstallationTips, report.InstallationTips)
}

func TestComputeWastageReport_SurfaceAreas(t *testing.T) {
	room := &model.RoomDimensions{Width: 10, Depth: 6, Height: 8}
	tiles := []model.PlacedTile{
		{Name: "A", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: model.SurfaceBack},
		{Name: "B", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: model.SurfaceFront},
		{Name: "C", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: model.SurfaceLeft},
		{Name: "D", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: model.SurfaceRight},
		{Name: "E", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: model.SurfaceFloor},
	}

	report, err := ComputeWastageReport(room, tiles)
	require.NoError(t, err)
	require.Len(t, report.Surfaces, 5)

	expectedArea := []float64{80, 80, 48, 48, 60}
	for i, s := range report.Surfaces {
		assert.Equal(t, tiles[i].Surface, s.Surface, "output order follows input order")
		assert.Equal(t, tiles[i].Name, s.Name)
		assert.Equal(t, expectedArea[i], s.SurfaceAreaSqFt)
	}
	assert.Equal(t, "Left Wall", report.Surfaces[2].SurfaceName)
	assert.Equal(t, "6 x 8 ft", report.Surfaces[2].Dimensions)
}

func TestComputeWastageReport_AreaRoundsUp(t *testing.T) {
	// 48 sq ft = 6912 sq in over 10x10 tiles = 69.12 -> 70, +10% = 77.
	room := &model.RoomDimensions{Width: 8, Depth: 6, Height: 8}
	report, err := ComputeWastageReport(room, []model.PlacedTile{floorTile(10, 10)})
	require.NoError(t, err)

	assert.Equal(t, 70, report.Surfaces[0].TilesNeeded)
	assert.Equal(t, 77, report.Surfaces[0].TotalTilesWithWastage)
}

func TestComputeWastageReport_WholePercentStaysExact(t *testing.T) {
	// 50 * 1.1 is 55.000000000000007 in floating point; the report must say 55.
	room := &model.RoomDimensions{Width: 10, Depth: 5, Height: 8}
	report, err := ComputeWastageReport(room, []model.PlacedTile{floorTile(12, 12)})
	require.NoError(t, err)

	assert.Equal(t, 50, report.Surfaces[0].TilesNeeded)
	assert.Equal(t, 55, report.Surfaces[0].TotalTilesWithWastage)
}

func TestComputeWastageReport_Totals(t *testing.T) {
	room := &model.RoomDimensions{Width: 8, Depth: 6, Height: 8}
	tiles := []model.PlacedTile{
		{Name: "Floor", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: model.SurfaceFloor, Price: 2},
		{Name: "Wall", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: model.SurfaceBack},
	}
	report, err := ComputeWastageReport(room, tiles)
	require.NoError(t, err)

	// Floor: 48 -> 53 @ 2 = 106. Back: 64 -> 71 @ 5 = 355.
	assert.Equal(t, 106.0, report.Surfaces[0].CostEstimate)
	assert.Equal(t, 2.0, report.Surfaces[0].UnitCost)
	assert.Equal(t, 71, report.Surfaces[1].TotalTilesWithWastage)
	assert.Equal(t, 355.0, report.Surfaces[1].CostEstimate)

	assert.Equal(t, 112, report.Summary.TotalTilesNeeded)
	assert.Equal(t, 124, report.Summary.TotalTiles)
	assert.Equal(t, 461.0, report.Summary.TotalCost)
}

func TestComputeWastageReport_TieredPolicy(t *testing.T) {
	room := &model.RoomDimensions{Width: 8, Depth: 6, Height: 8}
	opts := DefaultWastageOptions()
	opts.Policy = model.TieredWastagePolicy()

	tiles := []model.PlacedTile{
		{Name: "Herringbone", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: model.SurfaceFloor, Pattern: model.ComplexityComplex},
		{Name: "Plain", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: model.SurfaceFloor, Pattern: model.ComplexitySimple},
		{Name: "Default", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: model.SurfaceFloor},
	}
	report, err := ComputeWastageReportWithOptions(room, tiles, opts)
	require.NoError(t, err)

	assert.Equal(t, 15.0, report.Surfaces[0].WastagePercentage)
	assert.Equal(t, 56, report.Surfaces[0].TotalTilesWithWastage) // 48 * 1.15 = 55.2
	assert.Equal(t, 5.0, report.Surfaces[1].WastagePercentage)
	assert.Equal(t, 51, report.Surfaces[1].TotalTilesWithWastage) // 48 * 1.05 = 50.4
	assert.Equal(t, 10.0, report.Surfaces[2].WastagePercentage)
	assert.Equal(t, 53, report.Surfaces[2].TotalTilesWithWastage)

	assert.Equal(t, 10.0, report.Summary.TotalWastagePercentage, "equal weights average to 10")
	assert.Contains(t, report.Surfaces[0].WastageReasoning, "complex")
}

func TestComputeWastageReport_FlatPolicyIgnoresPattern(t *testing.T) {
	room := &model.RoomDimensions{Width: 8, Depth: 6, Height: 8}
	tile := floorTile(12, 12)
	tile.Pattern = model.ComplexityComplex

	report, err := ComputeWastageReport(room, []model.PlacedTile{tile})
	require.NoError(t, err)
	assert.Equal(t, 10.0, report.Surfaces[0].WastagePercentage)
}

func TestComputeWastageReport_ZeroPercent(t *testing.T) {
	room := &model.RoomDimensions{Width: 8, Depth: 6, Height: 8}
	opts := DefaultWastageOptions()
	opts.Policy = model.WastagePolicy{DefaultPercent: 0}

	report, err := ComputeWastageReportWithOptions(room, []model.PlacedTile{floorTile(12, 12)}, opts)
	require.NoError(t, err)
	assert.Equal(t, 48, report.Surfaces[0].TotalTilesWithWastage)
	assert.Equal(t, 0.0, report.TotalWastage.Percentage)
}

func TestComputeWastageReport_MissingTileSizeUsesFallback(t *testing.T) {
	room := &model.RoomDimensions{Width: 8, Depth: 6, Height: 8}
	report, err := ComputeWastageReport(room, []model.PlacedTile{{Name: "Unknown", Surface: model.SurfaceFloor}})
	require.NoError(t, err)

	s := report.Surfaces[0]
	assert.True(t, s.TileSizeAssumed)
	assert.Equal(t, 144.0, s.TileAreaSqIn)
	assert.Equal(t, 48, s.TilesNeeded)
}

func TestComputeWastageReport_Errors(t *testing.T) {
	room := &model.RoomDimensions{Width: 8, Depth: 6, Height: 8}

	_, err := ComputeWastageReport(nil, []model.PlacedTile{floorTile(12, 12)})
	assert.ErrorIs(t, err, model.ErrMissingRoomDimensions)

	_, err = ComputeWastageReport(room, nil)
	assert.ErrorIs(t, err, model.ErrEmptyTileList)

	_, err = ComputeWastageReport(&model.RoomDimensions{Width: 8, Depth: 0, Height: 8}, []model.PlacedTile{floorTile(12, 12)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	_, err = ComputeWastageReport(room, []model.PlacedTile{floorTile(-12, 12)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	_, err = ComputeWastageReport(room, []model.PlacedTile{{Name: "X", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: "ceiling"}})
	assert.ErrorIs(t, err, model.ErrUnknownSurface)
	assert.True(t, IsValidationError(err))

	opts := DefaultWastageOptions()
	opts.Policy.DefaultPercent = -5
	_, err = ComputeWastageReportWithOptions(room, []model.PlacedTile{floorTile(12, 12)}, opts)
	assert.Error(t, err)
}

func TestOptionsFromSettings(t *testing.T) {
	s := model.DefaultEstimateSettings()
	s.WastagePercent = 12
	s.TieredWastage = true
	s.FallbackUnitCost = 3

	opts := OptionsFromSettings(s)
	assert.Equal(t, 12.0, opts.Policy.DefaultPercent)
	assert.Equal(t, 15.0, opts.Policy.PercentFor(model.ComplexityComplex))
	assert.Equal(t, 12.0, opts.Policy.PercentFor(model.ComplexityUnspecified))
	assert.Equal(t, 3.0, opts.FallbackUnitCost)
	assert.Equal(t, model.FallbackTileWidth, opts.FallbackTileWidth)
}

func TestComputeWastageReport_DiffersFromGridLayout(t *testing.T) {
	// Area estimate and grid layout intentionally disagree: 7x7 ft with
	// 10x10 in tiles is ceil(7056/100)=71 by area but ceil(8.4)^2=81 cut tiles
	// on a grid.
	room := &model.RoomDimensions{Width: 7, Depth: 7, Height: 8}
	report, err := ComputeWastageReport(room, []model.PlacedTile{floorTile(10, 10)})
	require.NoError(t, err)

	surface, err := room.Surface(model.SurfaceFloor)
	require.NoError(t, err)
	grid, err := ComputeTileLayout(surface, model.Tile{Width: 10, Height: 10, Unit: model.UnitInches}, true)
	require.NoError(t, err)

	assert.Equal(t, 71, report.Surfaces[0].TilesNeeded)
	assert.Equal(t, 81, grid.TotalTiles)
}

func TestComputeWastageReport_TooManyTiles(t *testing.T) {
	_, err := ComputeWastageReport(&model.RoomDimensions{Width: 1e200, Depth: 1e200, Height: 8},
		[]model.PlacedTile{floorTile(12, 12)})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidDimension)
	assert.Contains(t, err.Error(), "needs more than")

	// 2e9 tiles fit, but not once the 10% buffer is added.
	huge := &model.RoomDimensions{Width: 40000, Depth: 50000, Height: 8}
	_, err = ComputeWastageReport(huge, []model.PlacedTile{floorTile(12, 12)})
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	opts := DefaultWastageOptions()
	opts.Policy = model.WastagePolicy{DefaultPercent: 0}
	report, err := ComputeWastageReportWithOptions(huge, []model.PlacedTile{floorTile(12, 12)}, opts)
	require.NoError(t, err)
	assert.Equal(t, 2000000000, report.Surfaces[0].TilesNeeded)
	assert.Equal(t, 2000000000, report.Surfaces[0].TotalTilesWithWastage)
}
