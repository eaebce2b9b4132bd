// Package narrative produces wastage reports through an external text
// generation provider, falling back to the local calculator when the
// provider is absent, fails or returns unusable content.
package narrative

import (
	"context"
	"errors"

	"github.com/Nithilan10/buildai/internal/model"
)

// Request is the input handed to a Provider.
type Request struct {
	Room  model.RoomDimensions `json:"roomDimensions"`
	Tiles []model.PlacedTile   `json:"placedTiles"`
}

// Provider generates a wastage report for a room.
type Provider interface {
	GenerateReport(ctx context.Context, req Request) (*model.WastageReport, error)
}

var (
	// ErrNoJSON is returned when the provider's reply contains no JSON object.
	ErrNoJSON = errors.New("no JSON object in response")
	// ErrProvider wraps transport and status failures of the provider.
	ErrProvider = errors.New("narrative provider error")
)
