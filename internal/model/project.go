package model

import "github.com/google/uuid"

// Project ties a room, its placed tiles and surface layouts together for
// save/load.
type Project struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Room     *RoomDimensions  `json:"room,omitempty"`
	Tiles    []PlacedTile     `json:"tiles"`
	Surfaces []Surface        `json:"surfaces"`    // Free-form surfaces for grid layouts
	Layout   Tile             `json:"layout_tile"` // Tile used for the grid layouts
	Settings EstimateSettings `json:"settings"`
	Report   *WastageReport   `json:"report,omitempty"`
}

func NewProject() Project {
	return Project{
		ID:       uuid.New().String()[:8],
		Name:     "Untitled",
		Tiles:    []PlacedTile{},
		Surfaces: []Surface{},
		Layout:   Tile{Width: FallbackTileWidth, Height: FallbackTileHeight, Unit: UnitInches},
		Settings: DefaultEstimateSettings(),
	}
}

// RoomSurfaces returns the free-form surfaces, or the five room planes when
// none were added and the room is known.
func (p Project) RoomSurfaces() []Surface {
	if len(p.Surfaces) > 0 || p.Room == nil {
		return p.Surfaces
	}
	return p.Room.Surfaces()
}
