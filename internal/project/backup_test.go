package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nithilan10/buildai/internal/model"
)

func TestExportImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup", "buildai-backup.json")

	cfg := model.DefaultAppConfig()
	cfg.Currency = "€"
	presets := model.DefaultPresets()

	if err := ExportAllData(path, cfg, presets); err != nil {
		t.Fatalf("ExportAllData: %v", err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData: %v", err)
	}
	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected created_at")
	}
	if backup.Config.Currency != "€" {
		t.Errorf("config not restored: %+v", backup.Config)
	}
	if len(backup.Presets.Tiles) != len(presets.Tiles) {
		t.Errorf("expected %d presets, got %d", len(presets.Tiles), len(backup.Presets.Tiles))
	}
}

func TestImportAllDataOlderMinorVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	os.WriteFile(path, []byte(`{"version":"1.0.0","config":{"theme":"dark"}}`), 0644)

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backup.Config.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestImportAllDataRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"no-version.json": `{"config":{}}`,
		"future.json":     `{"version":"2.0.0"}`,
		"garbage.json":    `not json`,
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		os.WriteFile(path, []byte(content), 0644)
		if _, err := ImportAllData(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	_, err := ImportAllData(filepath.Join(dir, "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected read error, got %v", err)
	}
}
