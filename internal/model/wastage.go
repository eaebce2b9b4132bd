package model

import (
	"fmt"
	"math"
	"strings"
)

// Complexity is the installation pattern of a placed tile.
type Complexity string

const (
	ComplexityUnspecified Complexity = ""
	ComplexityStraight    Complexity = "straight" // Straight cuts
	ComplexityComplex     Complexity = "complex"  // Diagonal, herringbone and other patterns
	ComplexitySimple      Complexity = "simple"   // Simple rectangular layout
)

// DefaultWastagePercent is applied when no finer policy matches.
const DefaultWastagePercent = 10.0

// ParseComplexity accepts the canonical names plus a few common aliases.
// The empty string maps to ComplexityUnspecified.
func ParseComplexity(s string) (Complexity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ComplexityUnspecified, nil
	case "straight", "straight cut", "straight cuts", "grid":
		return ComplexityStraight, nil
	case "complex", "pattern", "diagonal", "herringbone":
		return ComplexityComplex, nil
	case "simple", "rectangular", "simple rectangular":
		return ComplexitySimple, nil
	default:
		return ComplexityUnspecified, fmt.Errorf("unknown installation pattern %q", s)
	}
}

// WastagePolicy decides the buffer added on top of the area estimate.
type WastagePolicy struct {
	DefaultPercent float64                `json:"default_percent" yaml:"default_percent"`
	ByComplexity   map[Complexity]float64 `json:"by_complexity,omitempty" yaml:"by_complexity,omitempty"`
}

// FlatWastagePolicy is the baseline: 10% for everything.
func FlatWastagePolicy() WastagePolicy {
	return WastagePolicy{DefaultPercent: DefaultWastagePercent}
}

// TieredWastagePolicy uses the industry rule of thumb per installation pattern:
// 10% straight cuts, 15% complex patterns, 5% simple rectangular layouts.
func TieredWastagePolicy() WastagePolicy {
	return WastagePolicy{
		DefaultPercent: DefaultWastagePercent,
		ByComplexity: map[Complexity]float64{
			ComplexityStraight: 10,
			ComplexityComplex:  15,
			ComplexitySimple:   5,
		},
	}
}

// PercentFor returns the wastage percentage for an item of complexity c.
func (p WastagePolicy) PercentFor(c Complexity) float64 {
	if c != ComplexityUnspecified {
		if pct, ok := p.ByComplexity[c]; ok {
			return pct
		}
	}
	return p.DefaultPercent
}

// Reasoning returns the human-readable justification for c's percentage.
func (p WastagePolicy) Reasoning(c Complexity) string {
	pct := p.PercentFor(c)
	if _, ok := p.ByComplexity[c]; ok && c != ComplexityUnspecified {
		return fmt.Sprintf("%s wastage for %s installation", formatPercent(pct), c)
	}
	if pct == DefaultWastagePercent {
		return "Standard 10% wastage for cuts and breakage"
	}
	return fmt.Sprintf("%s wastage for cuts and breakage", formatPercent(pct))
}

// Validate rejects negative percentages.
func (p WastagePolicy) Validate() error {
	if p.DefaultPercent < 0 {
		return fmt.Errorf("wastage default_percent must not be negative, got %g", p.DefaultPercent)
	}
	for c, pct := range p.ByComplexity {
		if pct < 0 {
			return fmt.Errorf("wastage percent for %q must not be negative, got %g", c, pct)
		}
	}
	return nil
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%g%%", math.Round(pct*100)/100)
}
