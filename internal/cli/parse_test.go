package cli

import (
	"errors"
	"testing"

	"github.com/Nithilan10/buildai/internal/model"
)

func TestParseDims(t *testing.T) {
	tests := []struct {
		in      string
		n       int
		want    []float64
		wantErr bool
	}{
		{"10x8", 2, []float64{10, 8}, false},
		{"10X8", 2, []float64{10, 8}, false},
		{"2.5*3", 2, []float64{2.5, 3}, false},
		{"12x10x8", 3, []float64{12, 10, 8}, false},
		{"10", 2, nil, true},
		{"10xabc", 2, nil, true},
		{"10x8x2", 2, nil, true},
		{"0x8", 2, nil, true},
	}
	for _, tt := range tests {
		got, err := parseDims(tt.in, tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDims(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("parseDims(%q)[%d] = %g, want %g", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseDimsNonPositive(t *testing.T) {
	_, err := parseDims("-1x2", 2)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, model.ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension, got %v", err)
	}
}

func TestParseRoom(t *testing.T) {
	r, err := parseRoom("12x10x8")
	if err != nil {
		t.Fatal(err)
	}
	if r.Width != 12 || r.Depth != 10 || r.Height != 8 {
		t.Errorf("unexpected room %+v", r)
	}
}

func TestParseSurfaceAndTileUnits(t *testing.T) {
	s, err := parseSurface("10x8", "feet")
	if err != nil || s.Unit != model.UnitFeet {
		t.Errorf("parseSurface = %+v, %v", s, err)
	}
	if _, err := parseTile("12x12", "yards"); err == nil {
		t.Error("expected error for unknown unit")
	}
	tile, err := parseTile("12x12", "")
	if err != nil || tile.Unit != "" {
		t.Errorf("parseTile = %+v, %v", tile, err)
	}
}
