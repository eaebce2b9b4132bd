package model

import (
	"errors"
	"fmt"
)

// Validation failures. None of them are transient.
var (
	ErrInvalidDimension      = errors.New("invalid dimension")
	ErrMissingRoomDimensions = errors.New("room dimensions are required")
	ErrEmptyTileList         = errors.New("at least one placed tile is required")
	ErrUnknownSurface        = errors.New("unknown surface")
)

// DimensionError identifies the offending field of an ErrInvalidDimension.
type DimensionError struct {
	Field string
	Value float64
	Unit  Unit   // set when the unit, not the value, is at fault
	Issue string // overrides "must be positive" when set
}

func (e *DimensionError) Error() string {
	if e.Issue != "" {
		return fmt.Sprintf("%v: %s %s", ErrInvalidDimension, e.Field, e.Issue)
	}
	if e.Unit != "" {
		return fmt.Sprintf("%v: %s has unknown unit %q", ErrInvalidDimension, e.Field, e.Unit)
	}
	return fmt.Sprintf("%v: %s must be positive, got %g", ErrInvalidDimension, e.Field, e.Value)
}

func (e *DimensionError) Unwrap() error { return ErrInvalidDimension }
