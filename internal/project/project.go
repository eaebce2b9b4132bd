// Package project persists projects, application preferences, tile presets
// and backups as JSON files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nithilan10/buildai/internal/model"
)

// FileExtension is the extension of saved projects.
const FileExtension = ".buildai"

// Save writes the project to path as indented JSON, creating parent
// directories as needed.
func Save(path string, p model.Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write project %s: %w", path, err)
	}
	return nil
}

// Load reads a project saved by Save. Missing settings fall back to the
// defaults and nil slices are replaced by empty ones.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("read project %s: %w", path, err)
	}

	p := model.Project{Settings: model.DefaultEstimateSettings()}
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("parse project %s: %w", path, err)
	}
	if p.Room != nil {
		if err := p.Room.Validate(); err != nil {
			return model.Project{}, fmt.Errorf("project %s: %w", path, err)
		}
	}
	if p.Tiles == nil {
		p.Tiles = []model.PlacedTile{}
	}
	if p.Surfaces == nil {
		p.Surfaces = []model.Surface{}
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// EnsureExtension appends FileExtension when path has no extension.
func EnsureExtension(path string) string {
	if filepath.Ext(path) == "" {
		return path + FileExtension
	}
	return path
}
