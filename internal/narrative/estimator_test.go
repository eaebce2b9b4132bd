package narrative

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithilan10/buildai/internal/cache"
	"github.com/Nithilan10/buildai/internal/model"
)

type fakeProvider struct {
	report *model.WastageReport
	err    error
	calls  int
}

func (f *fakeProvider) GenerateReport(ctx context.Context, req Request) (*model.WastageReport, error) {
	f.calls++
	return f.report, f.err
}

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func clock() time.Time { return fixedNow }

func estimateInput() (*model.RoomDimensions, []model.PlacedTile) {
	return &model.RoomDimensions{Width: 8, Depth: 6, Height: 8},
		[]model.PlacedTile{{Name: "Ceramic", Dimensions: model.TileDimensions{Width: 12, Height: 12}, Surface: model.SurfaceFloor}}
}

func aiReport() *model.WastageReport {
	return &model.WastageReport{
		TotalWastage: model.TotalWastage{Percentage: 15, Reasoning: "Diagonal layout"},
		Surfaces: []model.SurfaceEstimate{{
			Surface: model.SurfaceFloor, TilesNeeded: 48, WastagePercentage: 15, TotalTilesWithWastage: 56, CostEstimate: 280,
		}},
	}
}

func TestEstimate_NoProvider(t *testing.T) {
	room, tiles := estimateInput()
	res, err := NewEstimator(nil, WithClock(clock)).Estimate(context.Background(), room, tiles)
	require.NoError(t, err)

	assert.Equal(t, SourceLocal, res.Source)
	assert.False(t, res.Fallback)
	assert.Equal(t, fixedNow, res.Timestamp)
	assert.Equal(t, 53, res.Report.Surfaces[0].TotalTilesWithWastage)
}

func TestEstimate_ProviderSuccessIsCached(t *testing.T) {
	room, tiles := estimateInput()
	p := &fakeProvider{report: aiReport()}
	mem := cache.NewMemoryCache()
	e := NewEstimator(p, WithCache(mem, time.Hour), WithClock(clock))

	res, err := e.Estimate(context.Background(), room, tiles)
	require.NoError(t, err)
	assert.Equal(t, SourceAI, res.Source)
	assert.Equal(t, 56, res.Report.Surfaces[0].TotalTilesWithWastage)
	assert.Equal(t, 1, mem.Len())

	res, err = e.Estimate(context.Background(), room, tiles)
	require.NoError(t, err)
	assert.Equal(t, SourceCache, res.Source)
	assert.Equal(t, 56, res.Report.Surfaces[0].TotalTilesWithWastage)
	assert.Equal(t, 1, p.calls, "second call is served from cache")

	other := []model.PlacedTile{{Name: "Subway", Dimensions: model.TileDimensions{Width: 3, Height: 6}, Surface: model.SurfaceBack}}
	_, err = e.Estimate(context.Background(), room, other)
	require.NoError(t, err)
	assert.Equal(t, 2, p.calls, "different input is a cache miss")
}

func TestEstimate_ProviderFailureFallsBack(t *testing.T) {
	room, tiles := estimateInput()
	p := &fakeProvider{err: errors.New("upstream timeout")}
	mem := cache.NewMemoryCache()

	res, err := NewEstimator(p, WithCache(mem, time.Hour), WithClock(clock)).Estimate(context.Background(), room, tiles)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.True(t, res.Fallback)
	assert.Equal(t, "upstream timeout", res.FallbackReason)
	assert.Equal(t, 53, res.Report.Surfaces[0].TotalTilesWithWastage)
	assert.Equal(t, 0, mem.Len(), "fallback results are not cached")
}

func TestEstimate_InvalidProviderReportFallsBack(t *testing.T) {
	room, tiles := estimateInput()
	p := &fakeProvider{report: &model.WastageReport{}}

	res, err := NewEstimator(p).Estimate(context.Background(), room, tiles)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.NotEmpty(t, res.FallbackReason)
}

func TestEstimate_ValidationErrorsAreReturned(t *testing.T) {
	p := &fakeProvider{report: aiReport()}
	e := NewEstimator(p)

	_, err := e.Estimate(context.Background(), nil, []model.PlacedTile{{Surface: model.SurfaceFloor}})
	assert.ErrorIs(t, err, model.ErrMissingRoomDimensions)

	room, _ := estimateInput()
	_, err = e.Estimate(context.Background(), room, nil)
	assert.ErrorIs(t, err, model.ErrEmptyTileList)
	assert.Equal(t, 0, p.calls, "provider is not consulted for invalid input")
}

func TestEstimate_CorruptCacheEntryIsIgnored(t *testing.T) {
	room, tiles := estimateInput()
	p := &fakeProvider{report: aiReport()}
	mem := cache.NewMemoryCache()

	key, err := cache.Key("wastage", Request{Room: *room, Tiles: tiles})
	require.NoError(t, err)
	require.NoError(t, mem.Set(context.Background(), key, []byte("not json"), time.Hour))

	res, err := NewEstimator(p, WithCache(mem, time.Hour)).Estimate(context.Background(), room, tiles)
	require.NoError(t, err)
	assert.Equal(t, SourceAI, res.Source)
	assert.Equal(t, 1, p.calls)
}

type blockingProvider struct{}

func (blockingProvider) GenerateReport(ctx context.Context, req Request) (*model.WastageReport, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(10 * time.Second):
		return aiReport(), nil
	}
}

func TestEstimate_ProviderDeadlineFallsBack(t *testing.T) {
	room, tiles := estimateInput()
	e := NewEstimator(blockingProvider{}, WithProviderDeadline(50*time.Millisecond), WithClock(clock))

	start := time.Now()
	res, err := e.Estimate(context.Background(), room, tiles)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Contains(t, res.FallbackReason, context.DeadlineExceeded.Error())
	assert.Equal(t, 53, res.Report.Surfaces[0].TotalTilesWithWastage)
}
