package model

import (
	"fmt"

	"github.com/google/uuid"
)

// TilePreset is a reusable tile definition used to pre-fill placed tiles.
type TilePreset struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Width    float64 `json:"width"`  // inches
	Height   float64 `json:"height"` // inches
	Price    float64 `json:"price"`  // per tile
	Material string  `json:"material"`
}

// NewTilePreset creates a new TilePreset with a generated ID.
func NewTilePreset(name string, width, height float64, material string, price float64) TilePreset {
	return TilePreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Width:    width,
		Height:   height,
		Price:    price,
		Material: material,
	}
}

// ToPlacedTile places this preset on the given surface.
func (tp TilePreset) ToPlacedTile(surface SurfaceTag) PlacedTile {
	return NewPlacedTile(tp.Name, tp.Width, tp.Height, surface, tp.Price)
}

// Tile returns the preset footprint in inches.
func (tp TilePreset) Tile() Tile {
	return Tile{Width: tp.Width, Height: tp.Height, Unit: UnitInches}
}

// Label returns "Name (WxH in)".
func (tp TilePreset) Label() string {
	return fmt.Sprintf("%s (%gx%g in)", tp.Name, tp.Width, tp.Height)
}

// Presets holds the user's saved tile presets.
type Presets struct {
	Tiles []TilePreset `json:"tiles"`
}

// DefaultPresets returns common tile sizes.
func DefaultPresets() Presets {
	return Presets{
		Tiles: []TilePreset{
			NewTilePreset("Ceramic 12x12", 12, 12, "Ceramic", 2.50),
			NewTilePreset("Porcelain 12x24", 12, 24, "Porcelain", 6.75),
			NewTilePreset("Porcelain 24x24", 24, 24, "Porcelain", 11.00),
			NewTilePreset("Subway 3x6", 3, 6, "Ceramic", 0.45),
			NewTilePreset("Marble 18x18", 18, 18, "Marble", 14.00),
			NewTilePreset("Wood-look Plank 6x36", 6, 36, "Porcelain", 7.20),
			NewTilePreset("Mosaic Sheet 12x12", 12, 12, "Glass", 9.50),
		},
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (p *Presets) FindByID(id string) *TilePreset {
	for i := range p.Tiles {
		if p.Tiles[i].ID == id {
			return &p.Tiles[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (p *Presets) FindByName(name string) *TilePreset {
	for i := range p.Tiles {
		if p.Tiles[i].Name == name {
			return &p.Tiles[i]
		}
	}
	return nil
}

// Names returns preset names for UI dropdowns.
func (p *Presets) Names() []string {
	names := make([]string, len(p.Tiles))
	for i, t := range p.Tiles {
		names[i] = t.Name
	}
	return names
}

// Merge adds presets from other whose names are not present yet and
// returns how many were added.
func (p *Presets) Merge(other Presets) int {
	added := 0
	for _, t := range other.Tiles {
		if p.FindByName(t.Name) != nil {
			continue
		}
		if t.ID == "" || p.FindByID(t.ID) != nil {
			t.ID = uuid.New().String()[:8]
		}
		p.Tiles = append(p.Tiles, t)
		added++
	}
	return added
}
