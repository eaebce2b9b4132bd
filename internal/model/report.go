package model

import "fmt"

// SurfaceEstimate is one line of a wastage report: one placed tile on one
// surface of the room.
type SurfaceEstimate struct {
	Surface               SurfaceTag `json:"surface"`
	SurfaceName           string     `json:"surfaceName"`
	Name                  string     `json:"name,omitempty"`
	Dimensions            string     `json:"dimensions"`
	TileSize              string     `json:"tileSize"`
	SurfaceAreaSqFt       float64    `json:"surfaceAreaSqFt"`
	SurfaceAreaSqIn       float64    `json:"surfaceAreaSqIn"`
	TileAreaSqIn          float64    `json:"tileAreaSqIn"`
	TileSizeAssumed       bool       `json:"tileSizeAssumed,omitempty"`
	TilesNeeded           int        `json:"tilesNeeded"`
	WastagePercentage     float64    `json:"wastagePercentage"`
	WastageReasoning      string     `json:"wastageReasoning"`
	TotalTilesWithWastage int        `json:"totalTilesWithWastage"`
	UnitCost              float64    `json:"unitCost"`
	CostEstimate          float64    `json:"costEstimate"`
}

// ExtraTiles returns the wastage buffer in tiles.
func (e SurfaceEstimate) ExtraTiles() int {
	return e.TotalTilesWithWastage - e.TilesNeeded
}

// TotalWastage is the report-level wastage statement.
type TotalWastage struct {
	Percentage float64 `json:"percentage"`
	Reasoning  string  `json:"reasoning"`
}

// ReportSummary rolls up every surface estimate.
type ReportSummary struct {
	TotalTilesNeeded       int     `json:"totalTilesNeeded"`
	TotalTiles             int     `json:"totalTiles"` // Including wastage
	TotalCost              float64 `json:"totalCost"`
	TotalWastagePercentage float64 `json:"totalWastagePercentage"`
}

// WastageReport is the structured output consumed by the presentation layer.
// Its shape is the same whether it was produced locally or by a narrative
// provider.
type WastageReport struct {
	TotalWastage     TotalWastage      `json:"totalWastage"`
	Surfaces         []SurfaceEstimate `json:"surfaces"`
	Recommendations  []string          `json:"recommendations"`
	InstallationTips []string          `json:"installationTips"`
	Summary          ReportSummary     `json:"summary"`
}

// Validate checks the invariants a report must satisfy before being shown.
// It is used on reports that did not come from the local calculator.
func (r *WastageReport) Validate() error {
	if r == nil {
		return fmt.Errorf("report is empty")
	}
	if len(r.Surfaces) == 0 {
		return fmt.Errorf("report has no surfaces")
	}
	if r.TotalWastage.Percentage < 0 {
		return fmt.Errorf("report wastage percentage is negative")
	}
	for i, s := range r.Surfaces {
		if s.TilesNeeded < 0 || s.TotalTilesWithWastage < 0 {
			return fmt.Errorf("surface %d has a negative tile count", i)
		}
		if s.TotalTilesWithWastage < s.TilesNeeded {
			return fmt.Errorf("surface %d has fewer tiles with wastage than needed", i)
		}
		if s.CostEstimate < 0 {
			return fmt.Errorf("surface %d has a negative cost", i)
		}
	}
	return nil
}

// Advice is the static text attached to every report.
type Advice struct {
	Recommendations  []string `json:"recommendations" yaml:"recommendations"`
	InstallationTips []string `json:"installation_tips" yaml:"installation_tips"`
}

// DefaultAdvice returns the stock recommendations and installation tips.
func DefaultAdvice() Advice {
	return Advice{
		Recommendations: []string{
			"Order 10% extra tiles for cuts and breakage",
			"Consider tile pattern and orientation for optimal usage",
			"Account for doorways and obstacles in your calculations",
		},
		InstallationTips: []string{
			"Start from the center and work outward for best results",
			"Use tile spacers for consistent grout lines",
			"Keep extra tiles for future repairs",
		},
	}
}
