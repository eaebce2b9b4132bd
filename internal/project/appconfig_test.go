package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Nithilan10/buildai/internal/model"
)

func TestAppConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultWastagePercent = 12
	cfg.Theme = "dark"
	cfg.AddRecentProject("/tmp/a.buildai", 10)

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig: %v", err)
	}
	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if loaded.DefaultWastagePercent != 12 || loaded.Theme != "dark" {
		t.Errorf("unexpected config %+v", loaded)
	}
	if len(loaded.RecentProjects) != 1 {
		t.Errorf("expected 1 recent project, got %v", loaded.RecentProjects)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Theme != "system" || cfg.DefaultWastagePercent != model.DefaultWastagePercent {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"theme":"light"}`), 0644)

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("expected light theme, got %s", cfg.Theme)
	}
	if cfg.DefaultUnitCost != model.FallbackUnitCost {
		t.Errorf("missing fields should keep defaults, got %g", cfg.DefaultUnitCost)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	if filepath.Base(DefaultConfigPath()) != "config.json" {
		t.Errorf("unexpected path %s", DefaultConfigPath())
	}
	if filepath.Base(DefaultConfigDir()) != ".buildai" {
		t.Errorf("unexpected dir %s", DefaultConfigDir())
	}
}
