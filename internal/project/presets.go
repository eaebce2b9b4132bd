package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Nithilan10/buildai/internal/model"
)

// DefaultPresetsPath returns ~/.buildai/presets.json.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the presets to path.
func SavePresets(path string, p model.Presets) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets reads presets from path. When the file does not exist the
// defaults are written there and returned.
func LoadPresets(path string) (model.Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			p := model.DefaultPresets()
			return p, SavePresets(path, p)
		}
		return model.Presets{}, err
	}
	var p model.Presets
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Presets{}, fmt.Errorf("parse presets %s: %w", path, err)
	}
	return p, nil
}

// LoadOrCreatePresets loads presets from the default location.
func LoadOrCreatePresets() (model.Presets, string, error) {
	path := DefaultPresetsPath()
	p, err := LoadPresets(path)
	return p, path, err
}

// ImportPresets merges the presets stored at path into existing and returns
// the result with the number of presets added. Presets whose name already
// exists are skipped.
func ImportPresets(path string, existing model.Presets) (model.Presets, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, 0, err
	}
	var imported model.Presets
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, 0, fmt.Errorf("parse presets %s: %w", path, err)
	}
	added := existing.Merge(imported)
	return existing, added, nil
}

// ExportPresets writes presets to path for sharing.
func ExportPresets(path string, p model.Presets) error {
	if err := SavePresets(path, p); err != nil {
		return fmt.Errorf("export presets: %w", err)
	}
	return nil
}
