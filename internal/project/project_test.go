package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Nithilan10/buildai/internal/model"
)

func TestSaveLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kitchen.buildai")

	p := model.NewProject()
	p.Name = "Kitchen"
	p.Room = &model.RoomDimensions{Width: 12, Depth: 10, Height: 8}
	p.Tiles = append(p.Tiles, model.NewPlacedTile("Subway", 3, 6, model.SurfaceBack, 0.45))
	p.Settings.TieredWastage = true

	if err := Save(path, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ID != p.ID || loaded.Name != "Kitchen" {
		t.Errorf("unexpected project identity %s/%s", loaded.ID, loaded.Name)
	}
	if loaded.Room == nil || loaded.Room.Width != 12 {
		t.Errorf("room not restored: %+v", loaded.Room)
	}
	if len(loaded.Tiles) != 1 || loaded.Tiles[0].Surface != model.SurfaceBack {
		t.Errorf("tiles not restored: %+v", loaded.Tiles)
	}
	if !loaded.Settings.TieredWastage {
		t.Error("settings not restored")
	}
}

func TestLoadProjectDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.buildai")
	if err := os.WriteFile(path, []byte(`{"id":"abc"}`), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "bare" {
		t.Errorf("expected name from file, got %q", p.Name)
	}
	if p.Tiles == nil || p.Surfaces == nil {
		t.Error("slices should be non-nil")
	}
	if p.Settings.WastagePercent != model.DefaultWastagePercent {
		t.Errorf("expected default wastage, got %g", p.Settings.WastagePercent)
	}
}

func TestLoadProjectErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.buildai")); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.buildai")
	os.WriteFile(garbage, []byte("not json"), 0644)
	if _, err := Load(garbage); err == nil {
		t.Error("expected error for invalid JSON")
	}

	badRoom := filepath.Join(dir, "room.buildai")
	os.WriteFile(badRoom, []byte(`{"room":{"width":-1,"depth":2,"height":2}}`), 0644)
	if _, err := Load(badRoom); err == nil {
		t.Error("expected error for invalid room")
	}
}

func TestEnsureExtension(t *testing.T) {
	if got := EnsureExtension("kitchen"); got != "kitchen.buildai" {
		t.Errorf("got %q", got)
	}
	if got := EnsureExtension("kitchen.json"); got != "kitchen.json" {
		t.Errorf("got %q", got)
	}
}
