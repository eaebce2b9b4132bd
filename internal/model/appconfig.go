package model

// Fallbacks used when a placed tile omits its size or price.
const (
	FallbackTileWidth  = 12.0 // inches
	FallbackTileHeight = 12.0 // inches
	FallbackUnitCost   = 5.0  // per tile
)

// EstimateSettings holds the wastage/cost knobs of a project.
type EstimateSettings struct {
	WastagePercent     float64 `json:"wastage_percent" yaml:"wastage_percent"`           // Flat default percentage
	TieredWastage      bool    `json:"tiered_wastage" yaml:"tiered_wastage"`             // Use per-pattern percentages
	FallbackUnitCost   float64 `json:"fallback_unit_cost" yaml:"fallback_unit_cost"`     // Price when a tile has none
	FallbackTileWidth  float64 `json:"fallback_tile_width" yaml:"fallback_tile_width"`   // inches
	FallbackTileHeight float64 `json:"fallback_tile_height" yaml:"fallback_tile_height"` // inches
	Currency           string  `json:"currency" yaml:"currency"`
	AllowPartial       bool    `json:"allow_partial" yaml:"allow_partial"` // Layout mode for surface grids
}

// DefaultEstimateSettings matches the baseline behaviour: flat 10%, $5 per
// tile and 12x12 inch tiles when unspecified.
func DefaultEstimateSettings() EstimateSettings {
	return EstimateSettings{
		WastagePercent:     DefaultWastagePercent,
		TieredWastage:      false,
		FallbackUnitCost:   FallbackUnitCost,
		FallbackTileWidth:  FallbackTileWidth,
		FallbackTileHeight: FallbackTileHeight,
		Currency:           "$",
		AllowPartial:       true,
	}
}

// Policy builds the wastage policy described by these settings.
func (s EstimateSettings) Policy() WastagePolicy {
	p := FlatWastagePolicy()
	if s.TieredWastage {
		p = TieredWastagePolicy()
	}
	p.DefaultPercent = s.WastagePercent
	return p
}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultWastagePercent float64 `json:"default_wastage_percent"`
	DefaultTieredWastage  bool    `json:"default_tiered_wastage"`
	DefaultUnitCost       float64 `json:"default_unit_cost"`
	DefaultTileWidth      float64 `json:"default_tile_width"`
	DefaultTileHeight     float64 `json:"default_tile_height"`
	DefaultAllowPartial   bool    `json:"default_allow_partial"`
	Currency              string  `json:"currency"`

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects   []string `json:"recent_projects"`
	Theme            string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultEstimateSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultEstimateSettings()
	return AppConfig{
		DefaultWastagePercent: defaults.WastagePercent,
		DefaultTieredWastage:  defaults.TieredWastage,
		DefaultUnitCost:       defaults.FallbackUnitCost,
		DefaultTileWidth:      defaults.FallbackTileWidth,
		DefaultTileHeight:     defaults.FallbackTileHeight,
		DefaultAllowPartial:   defaults.AllowPartial,
		Currency:              defaults.Currency,
		AutoSaveInterval:      0,
		RecentProjects:        []string{},
		Theme:                 "system",
	}
}

// ApplyToSettings copies the defaults into s. Used when creating a new
// project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *EstimateSettings) {
	s.WastagePercent = c.DefaultWastagePercent
	s.TieredWastage = c.DefaultTieredWastage
	s.FallbackUnitCost = c.DefaultUnitCost
	s.FallbackTileWidth = c.DefaultTileWidth
	s.FallbackTileHeight = c.DefaultTileHeight
	s.AllowPartial = c.DefaultAllowPartial
	s.Currency = c.Currency
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
