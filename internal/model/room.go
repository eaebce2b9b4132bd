package model

import (
	"fmt"
	"strings"
)

// RoomDimensions is the room-analysis output, in feet.
type RoomDimensions struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// Validate requires all three dimensions to be positive.
func (r RoomDimensions) Validate() error {
	if !positive(r.Width) {
		return &DimensionError{Field: "roomDimensions.width", Value: r.Width}
	}
	if !positive(r.Depth) {
		return &DimensionError{Field: "roomDimensions.depth", Value: r.Depth}
	}
	if !positive(r.Height) {
		return &DimensionError{Field: "roomDimensions.height", Value: r.Height}
	}
	return nil
}

// SurfaceTag names one plane of a rectangular room.
type SurfaceTag string

const (
	SurfaceFloor SurfaceTag = "floor"
	SurfaceBack  SurfaceTag = "back"
	SurfaceFront SurfaceTag = "front"
	SurfaceLeft  SurfaceTag = "left"
	SurfaceRight SurfaceTag = "right"
)

// SurfaceTags lists every tag in display order.
var SurfaceTags = []SurfaceTag{SurfaceFloor, SurfaceBack, SurfaceFront, SurfaceLeft, SurfaceRight}

// Valid reports whether t is one of the five known surfaces.
func (t SurfaceTag) Valid() bool {
	switch t {
	case SurfaceFloor, SurfaceBack, SurfaceFront, SurfaceLeft, SurfaceRight:
		return true
	}
	return false
}

// DisplayName returns "Floor" or "<Side> Wall".
func (t SurfaceTag) DisplayName() string {
	if t == SurfaceFloor {
		return "Floor"
	}
	s := string(t)
	if s == "" {
		return "Wall"
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Wall"
}

// ParseSurfaceTag is case-insensitive and accepts "<side> wall".
func ParseSurfaceTag(s string) (SurfaceTag, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimSuffix(v, " wall")
	tag := SurfaceTag(v)
	if !tag.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSurface, s)
	}
	return tag, nil
}

// Surface returns the plane of the room designated by tag, in feet.
// floor is width x depth, back/front are width x height, left/right are
// depth x height.
func (r RoomDimensions) Surface(tag SurfaceTag) (Surface, error) {
	s := Surface{Label: tag.DisplayName(), Unit: UnitFeet}
	switch tag {
	case SurfaceFloor:
		s.Width, s.Height = r.Width, r.Depth
	case SurfaceBack, SurfaceFront:
		s.Width, s.Height = r.Width, r.Height
	case SurfaceLeft, SurfaceRight:
		s.Width, s.Height = r.Depth, r.Height
	default:
		return Surface{}, fmt.Errorf("%w: %q", ErrUnknownSurface, tag)
	}
	return s, nil
}

// Surfaces returns every plane of the room in SurfaceTags order.
func (r RoomDimensions) Surfaces() []Surface {
	out := make([]Surface, 0, len(SurfaceTags))
	for _, tag := range SurfaceTags {
		s, _ := r.Surface(tag)
		out = append(out, s)
	}
	return out
}
