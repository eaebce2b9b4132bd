package narrative

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Nithilan10/buildai/internal/cache"
	"github.com/Nithilan10/buildai/internal/engine"
	"github.com/Nithilan10/buildai/internal/model"
)

// Source records where a report came from.
type Source string

const (
	SourceLocal    Source = "local"    // No provider configured
	SourceCache    Source = "cache"    // Earlier provider result
	SourceAI       Source = "ai"       // Fresh provider result
	SourceFallback Source = "fallback" // Provider failed, local calculation used
)

// Result is the outcome of Estimator.Estimate. Report is never nil on
// success.
type Result struct {
	Report         *model.WastageReport `json:"wastageData"`
	Source         Source               `json:"source"`
	Fallback       bool                 `json:"fallback"`
	FallbackReason string               `json:"fallbackReason,omitempty"`
	Timestamp      time.Time            `json:"timestamp"`
}

// DefaultProviderDeadline bounds one provider call, retries included.
const DefaultProviderDeadline = 60 * time.Second

// Estimator chooses between a narrative provider and the local calculator.
type Estimator struct {
	provider Provider
	cache    cache.Cache
	ttl      time.Duration
	deadline time.Duration
	opts     engine.WastageOptions
	logger   *log.Logger
	now      func() time.Time
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithCache stores provider reports in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(e *Estimator) {
		e.cache = c
		e.ttl = ttl
	}
}

// WithProviderDeadline limits the time spent waiting for the provider,
// retries included, before falling back to the local report. Zero or
// negative disables the limit.
func WithProviderDeadline(d time.Duration) Option {
	return func(e *Estimator) { e.deadline = d }
}

// WithWastageOptions sets the options of the local calculation.
func WithWastageOptions(opts engine.WastageOptions) Option {
	return func(e *Estimator) { e.opts = opts }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Estimator) { e.logger = l }
}

// WithClock sets the time source used for Result.Timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Estimator) { e.now = now }
}

// NewEstimator creates an estimator. A nil provider always yields the local
// report.
func NewEstimator(p Provider, opts ...Option) *Estimator {
	e := &Estimator{
		provider: p,
		cache:    cache.NewNullCache(),
		ttl:      cache.DefaultTTL,
		deadline: DefaultProviderDeadline,
		opts:     engine.DefaultWastageOptions(),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		now:      time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Estimate returns a wastage report for the room. Validation failures of the
// input are returned as errors; provider failures are not.
func (e *Estimator) Estimate(ctx context.Context, room *model.RoomDimensions, tiles []model.PlacedTile) (Result, error) {
	local, err := engine.ComputeWastageReportWithOptions(room, tiles, e.opts)
	if err != nil {
		return Result{}, err
	}
	if e.provider == nil {
		return e.result(local, SourceLocal, ""), nil
	}

	req := Request{Room: *room, Tiles: tiles}
	key, err := cache.Key("wastage", req)
	if err != nil {
		return e.result(local, SourceFallback, err.Error()), nil
	}

	if data, hit, err := e.cache.Get(ctx, key); err != nil {
		e.logger.Warn("cache read failed", "err", err)
	} else if hit {
		var cached model.WastageReport
		if err := json.Unmarshal(data, &cached); err == nil {
			e.logger.Debug("wastage report from cache", "key", key)
			return e.result(&cached, SourceCache, ""), nil
		}
		_ = e.cache.Delete(ctx, key)
	}

	report, err := e.generate(ctx, req)
	if err == nil {
		err = report.Validate()
	}
	if err != nil {
		e.logger.Warn("narrative provider failed, using local calculation", "err", err)
		return e.result(local, SourceFallback, err.Error()), nil
	}

	if data, err := json.Marshal(report); err == nil {
		if err := e.cache.Set(ctx, key, data, e.ttl); err != nil {
			e.logger.Warn("cache write failed", "err", err)
		}
	}
	return e.result(report, SourceAI, ""), nil
}

func (e *Estimator) generate(ctx context.Context, req Request) (*model.WastageReport, error) {
	if e.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.deadline)
		defer cancel()
	}
	return e.provider.GenerateReport(ctx, req)
}

func (e *Estimator) result(r *model.WastageReport, src Source, reason string) Result {
	return Result{
		Report:         r,
		Source:         src,
		Fallback:       src == SourceFallback,
		FallbackReason: reason,
		Timestamp:      e.now().UTC(),
	}
}
