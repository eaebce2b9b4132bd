package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Nithilan10/buildai/internal/model"
)

// ─── Delimiter Detection ───────────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Name,Width,Height,Surface\nA,12,12,floor\n", ','},
		{"semicolon", "Name;Width;Height;Surface\nA;12;12;floor\n", ';'},
		{"tab", "Name\tWidth\tHeight\tSurface\nA\t12\t12\tfloor\n", '\t'},
		{"pipe", "Name|Width|Height|Surface\nA|12|12|floor\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ─── Column Detection ──────────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	m, ok := DetectColumns([]string{"Name", "Width", "Height", "Surface", "Price", "Pattern"})
	if !ok {
		t.Fatal("expected header to be detected")
	}
	if m.Name != 0 || m.Width != 1 || m.Height != 2 || m.Surface != 3 || m.Price != 4 || m.Pattern != 5 {
		t.Errorf("unexpected mapping %+v", m)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	m, ok := DetectColumns([]string{"Wall", "COST", "Tile Name", "W", "Length"})
	if !ok {
		t.Fatal("expected header to be detected")
	}
	if m.Surface != 0 || m.Price != 1 || m.Name != 2 || m.Width != 3 || m.Height != 4 || m.Pattern != -1 {
		t.Errorf("unexpected mapping %+v", m)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	m, ok := DetectColumns([]string{"Ceramic", "12", "12", "floor"})
	if ok {
		t.Error("expected no header")
	}
	if m.Surface != 3 || m.Pattern != 5 {
		t.Errorf("expected positional mapping, got %+v", m)
	}
}

// ─── CSV Import ────────────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Name,Width,Height,Surface,Price,Pattern\n" +
		"Ceramic,12,12,floor,2.50,straight\n" +
		"Subway,3,6,Back Wall,$0.45,herringbone\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tiles) != 2 {
		t.Fatalf("expected 2 tiles, got %d", len(result.Tiles))
	}

	floor := result.Tiles[0]
	if floor.Name != "Ceramic" || floor.Dimensions.Width != 12 || floor.Surface != model.SurfaceFloor ||
		floor.Price != 2.5 || floor.Pattern != model.ComplexityStraight {
		t.Errorf("unexpected first tile %+v", floor)
	}
	back := result.Tiles[1]
	if back.Surface != model.SurfaceBack || back.Price != 0.45 || back.Pattern != model.ComplexityComplex {
		t.Errorf("unexpected second tile %+v", back)
	}
	if floor.ID == "" || floor.ID == back.ID {
		t.Error("each tile should get a unique ID")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Ceramic,12,12,floor\nMarble,18,18,left,14\n"), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tiles) != 2 {
		t.Fatalf("expected 2 tiles, got %d", len(result.Tiles))
	}
	if result.Tiles[1].Surface != model.SurfaceLeft || result.Tiles[1].Price != 14 {
		t.Errorf("unexpected tile %+v", result.Tiles[1])
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Product Code,X,Y,Where\nCeramic,12,12,floor\n"), ',')
	if len(result.Tiles) != 1 {
		t.Fatalf("expected 1 tile, got %d (errors: %v)", len(result.Tiles), result.Errors)
	}
	if !containsString(result.Warnings, "Detected header row, skipping") {
		t.Errorf("expected header warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingSizeWarns(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width,Height,Surface\nMystery,,,floor\n"), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tiles) != 1 || result.Tiles[0].Dimensions.Width != 0 {
		t.Fatalf("expected one tile without a size, got %+v", result.Tiles)
	}
	if !containsSubstring(result.Warnings, "Tile size missing") {
		t.Errorf("expected size warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	data := "Name,Width,Height,Surface,Price\n" +
		"Good,12,12,floor,1\n" +
		"BadWidth,abc,12,floor,1\n" +
		"Negative,-3,12,floor,1\n" +
		"NoSurface,12,12,,1\n" +
		"Ceiling,12,12,ceiling,1\n" +
		"BadPrice,12,12,floor,cheap\n" +
		"\n" +
		"AlsoGood,6,6,right,\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if len(result.Tiles) != 2 {
		t.Errorf("expected 2 valid tiles, got %d", len(result.Tiles))
	}
	if len(result.Errors) != 5 {
		t.Errorf("expected 5 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	for _, want := range []string{"Invalid width 'abc'", "must not be negative", "Missing surface", "Unknown surface 'ceiling'", "Invalid price"} {
		if !containsSubstring(result.Errors, want) {
			t.Errorf("expected an error containing %q, got %v", want, result.Errors)
		}
	}
}

func TestImportCSVFromReader_NonFiniteValuesAreRowErrors(t *testing.T) {
	data := "Name,Width,Height,Surface,Price\n" +
		"NaNWidth,NaN,12,floor,1\n" +
		"InfHeight,12,+Inf,floor,1\n" +
		"InfWidth,-inf,12,floor,1\n" +
		"NaNPrice,12,12,floor,nan\n" +
		"Good,12,12,floor,1\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')
	if len(result.Tiles) != 1 || result.Tiles[0].Name != "Good" {
		t.Fatalf("expected only the Good tile, got %+v", result.Tiles)
	}
	if len(result.Errors) != 4 {
		t.Errorf("expected 4 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	for _, want := range []string{"Invalid width 'NaN'", "Invalid height '+Inf'", "Invalid width '-inf'", "Invalid price 'nan'"} {
		if !containsSubstring(result.Errors, want) {
			t.Errorf("expected an error containing %q, got %v", want, result.Errors)
		}
	}
}

func TestImportCSVFromReader_UnknownPatternWarns(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width,Height,Surface,Pattern\nA,12,12,floor,zigzag\n"), ',')
	if len(result.Tiles) != 1 || result.Tiles[0].Pattern != model.ComplexityUnspecified {
		t.Fatalf("expected one tile with default pattern, got %+v", result.Tiles)
	}
	if !containsSubstring(result.Warnings, "Unknown pattern 'zigzag'") {
		t.Errorf("expected pattern warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingSurfaceColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width,Height\nA,12,12\n"), ',')
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Surface") {
		t.Errorf("expected missing Surface column error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width,Height,Surface\n"), ',')
	if len(result.Tiles) != 0 || !containsString(result.Errors, "No data rows found") {
		t.Errorf("expected no data error, got tiles=%v errors=%v", result.Tiles, result.Errors)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.csv")
	data := "Name;Width;Height;Surface\nCeramic;12;12;floor\nSubway;3;6;back\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tiles) != 2 {
		t.Errorf("expected 2 tiles, got %d", len(result.Tiles))
	}
	if len(result.Warnings) == 0 || result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileErrors(t *testing.T) {
	if r := ImportCSV("/nonexistent/tiles.csv"); len(r.Errors) == 0 {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if r := ImportCSV(path); len(r.Errors) != 1 || r.Errors[0] != "File is empty" {
		t.Errorf("expected 'File is empty', got %v", r.Errors)
	}
}

// ─── Excel Import ──────────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiles.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Surface", "Name", "Width", "Height", "Price"},
		{"floor", "Porcelain", 24, 24, 11},
		{"front", "Subway", 3, 6, 0.45},
	})

	result := ImportFile(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tiles) != 2 {
		t.Fatalf("expected 2 tiles, got %d", len(result.Tiles))
	}
	if result.Tiles[0].Name != "Porcelain" || result.Tiles[0].Dimensions.Width != 24 || result.Tiles[0].Price != 11 {
		t.Errorf("unexpected tile %+v", result.Tiles[0])
	}
	if result.Tiles[1].Surface != model.SurfaceFront {
		t.Errorf("expected front surface, got %s", result.Tiles[1].Surface)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	if r := ImportExcel("/nonexistent/tiles.xlsx"); len(r.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsSubstring(list []string, s string) bool {
	for _, v := range list {
		if strings.Contains(v, s) {
			return true
		}
	}
	return false
}
