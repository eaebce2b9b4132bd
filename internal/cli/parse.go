package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Nithilan10/buildai/internal/model"
)

// parseDims splits "10x8" (or "10X8", "10*8") into n positive numbers.
func parseDims(s string, n int) ([]float64, error) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == 'x' || r == '*'
	})
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d dimensions separated by 'x', got %q", n, s)
	}
	dims := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dimension %q in %q", f, s)
		}
		if v <= 0 {
			return nil, &model.DimensionError{Field: fmt.Sprintf("dimension %d", i+1), Value: v}
		}
		dims[i] = v
	}
	return dims, nil
}

func parseSurface(s, unit string) (model.Surface, error) {
	d, err := parseDims(s, 2)
	if err != nil {
		return model.Surface{}, fmt.Errorf("--surface: %w", err)
	}
	u, err := parseOptionalUnit(unit)
	if err != nil {
		return model.Surface{}, err
	}
	return model.Surface{Width: d[0], Height: d[1], Unit: u}, nil
}

func parseTile(s, unit string) (model.Tile, error) {
	d, err := parseDims(s, 2)
	if err != nil {
		return model.Tile{}, fmt.Errorf("--tile: %w", err)
	}
	u, err := parseOptionalUnit(unit)
	if err != nil {
		return model.Tile{}, err
	}
	return model.Tile{Width: d[0], Height: d[1], Unit: u}, nil
}

// parseRoom reads "WxDxH" in feet.
func parseRoom(s string) (*model.RoomDimensions, error) {
	d, err := parseDims(s, 3)
	if err != nil {
		return nil, fmt.Errorf("--room: %w", err)
	}
	return &model.RoomDimensions{Width: d[0], Depth: d[1], Height: d[2]}, nil
}

func parseOptionalUnit(s string) (model.Unit, error) {
	if s == "" {
		return "", nil
	}
	return model.ParseUnit(s)
}
