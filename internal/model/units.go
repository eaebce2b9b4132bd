package model

import (
	"fmt"
	"strings"
)

// Unit is a length unit.
type Unit string

const (
	UnitFeet        Unit = "ft"
	UnitInches      Unit = "in"
	UnitMeters      Unit = "m"
	UnitCentimeters Unit = "cm"
	UnitMillimeters Unit = "mm"
)

// SquareInchesPerSquareFoot converts room areas (ft²) to tile areas (in²).
const SquareInchesPerSquareFoot = 144.0

// millimeters per unit
var unitScale = map[Unit]float64{
	UnitFeet:        304.8,
	UnitInches:      25.4,
	UnitMeters:      1000,
	UnitCentimeters: 10,
	UnitMillimeters: 1,
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	_, ok := unitScale[u]
	return ok
}

func (u Unit) String() string {
	return string(u)
}

// ParseUnit accepts the short symbol or a spelled-out name.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ft", "feet", "foot", "'":
		return UnitFeet, nil
	case "in", "inch", "inches", "\"":
		return UnitInches, nil
	case "m", "meter", "meters", "metre", "metres":
		return UnitMeters, nil
	case "cm", "centimeter", "centimeters":
		return UnitCentimeters, nil
	case "mm", "millimeter", "millimeters":
		return UnitMillimeters, nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

// Convert converts v from one unit to another. Unknown units panic; callers
// validate units before converting.
func Convert(v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	f, ok := unitScale[from]
	if !ok {
		panic(fmt.Sprintf("model: unknown unit %q", from))
	}
	t, ok := unitScale[to]
	if !ok {
		panic(fmt.Sprintf("model: unknown unit %q", to))
	}
	return v * f / t
}

// SquareFeetToSquareInches converts an area in ft² to in².
func SquareFeetToSquareInches(sqft float64) float64 {
	return sqft * SquareInchesPerSquareFoot
}
