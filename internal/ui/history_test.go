package ui

import (
	"testing"

	"github.com/Nithilan10/buildai/internal/model"
)

func tilesN(n int) []model.PlacedTile {
	tiles := make([]model.PlacedTile, n)
	for i := range tiles {
		tiles[i] = model.PlacedTile{ID: string(rune('a' + i)), Name: "Tile", Surface: model.SurfaceFloor}
	}
	return tiles
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("new history should have nothing to undo or redo")
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, nil, "empty"))
	h.Push(MakeSnapshot(tilesN(1), nil, "one tile"))

	current := MakeSnapshot(tilesN(2), nil, "two tiles")

	restored, ok := h.Undo(current)
	if !ok || len(restored.Tiles) != 1 {
		t.Fatalf("first undo = %d tiles, %v", len(restored.Tiles), ok)
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok || len(redone.Tiles) != 2 {
		t.Fatalf("redo = %d tiles, %v", len(redone.Tiles), ok)
	}

	restored, _ = h.Undo(redone)
	restored, ok = h.Undo(restored)
	if !ok || len(restored.Tiles) != 0 || restored.Label != "empty" {
		t.Errorf("expected empty state, got %+v", restored)
	}
	if _, ok := h.Undo(restored); ok {
		t.Error("undo past the first state should fail")
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, nil, "a"))
	h.Undo(MakeSnapshot(tilesN(1), nil, "b"))
	h.Push(MakeSnapshot(nil, nil, "c"))
	if h.CanRedo() {
		t.Error("push should clear redo stack")
	}
}

func TestMaxDepth(t *testing.T) {
	h := NewHistory()
	h.maxDepth = 3
	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(tilesN(i), nil, ""))
	}
	if len(h.undoStack) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(h.undoStack))
	}
	if len(h.undoStack[0].Tiles) != 2 {
		t.Errorf("oldest entries should be dropped, first has %d tiles", len(h.undoStack[0].Tiles))
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tiles := tilesN(1)
	surfaces := []model.Surface{{Label: "Wall", Width: 1, Height: 1}}
	snap := MakeSnapshot(tiles, surfaces, "")

	tiles[0].Name = "Changed"
	surfaces[0].Width = 9
	if snap.Tiles[0].Name != "Tile" || snap.Surfaces[0].Width != 1 {
		t.Error("snapshot should not share backing arrays")
	}

	h := NewHistory()
	h.Push(snap)
	h.Clear()
	if h.CanUndo() {
		t.Error("Clear should empty the history")
	}
}
