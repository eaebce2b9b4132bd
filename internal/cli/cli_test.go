package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithilan10/buildai/internal/model"
	"github.com/Nithilan10/buildai/internal/narrative"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"layout", "report", "surfaces", "serve", "presets"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestLayoutCommand(t *testing.T) {
	out, err := execute(t, "layout", "--surface", "10x8", "--unit", "ft", "--tile", "12x12", "--tile-unit", "in")
	require.NoError(t, err)
	assert.Contains(t, out, "Total tiles:     80")
	assert.Contains(t, out, "Rows:            8")
}

func TestLayoutCommandJSON(t *testing.T) {
	out, err := execute(t, "layout", "--surface", "10x10", "--tile", "3x3", "--partial", "--json")
	require.NoError(t, err)

	var usage model.TileUsage
	require.NoError(t, json.Unmarshal([]byte(out), &usage))
	assert.Equal(t, 16, usage.TotalTiles)
	assert.True(t, usage.AllowPartial)
}

func TestLayoutCommandErrors(t *testing.T) {
	_, err := execute(t, "layout", "--surface", "10", "--tile", "3x3")
	assert.Error(t, err)

	_, err = execute(t, "layout", "--surface", "10x8", "--unit", "ft", "--tile", "12x12")
	assert.ErrorContains(t, err, "--tile-unit")

	_, err = execute(t, "layout", "--tile", "3x3")
	assert.ErrorContains(t, err, "surface")
}

func writeTiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReportCommand(t *testing.T) {
	tiles := writeTiles(t, "name,width,height,surface\nCeramic,12,12,floor\n")
	dir := t.TempDir()
	pdf := filepath.Join(dir, "report.pdf")
	xlsx := filepath.Join(dir, "report.xlsx")
	labels := filepath.Join(dir, "labels.pdf")

	out, err := execute(t, "report", "--room", "8x6x8", "--tiles", tiles,
		"--pdf", pdf, "--xlsx", xlsx, "--labels", labels)
	require.NoError(t, err)

	assert.Contains(t, out, "Floor")
	assert.Contains(t, out, "53")
	assert.Contains(t, out, "$265.00")
	for _, p := range []string{pdf, xlsx, labels} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestReportCommandJSONTiered(t *testing.T) {
	tiles := writeTiles(t, "name,width,height,surface,price,pattern\nPlank,12,12,floor,2,herringbone\n")

	out, err := execute(t, "report", "--room", "8x6x8", "--tiles", tiles, "--tiered", "--json")
	require.NoError(t, err)

	var res narrative.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, narrative.SourceLocal, res.Source)
	require.Len(t, res.Report.Surfaces, 1)
	assert.Equal(t, 15.0, res.Report.Surfaces[0].WastagePercentage)
	assert.Equal(t, 56, res.Report.Surfaces[0].TotalTilesWithWastage)
	assert.Equal(t, 112.0, res.Report.Surfaces[0].CostEstimate)
}

func TestReportCommandErrors(t *testing.T) {
	tiles := writeTiles(t, "name,width,height,surface\nCeramic,12,12,floor\n")

	_, err := execute(t, "report", "--room", "8x6", "--tiles", tiles)
	assert.ErrorContains(t, err, "--room")

	empty := writeTiles(t, "name,width,height,surface\n")
	_, err = execute(t, "report", "--room", "8x6x8", "--tiles", empty)
	assert.ErrorContains(t, err, "no tiles imported")

	t.Setenv("OPENAI_API_KEY", "")
	_, err = execute(t, "report", "--room", "8x6x8", "--tiles", tiles, "--ai")
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestSurfacesCommandMissingFile(t *testing.T) {
	_, err := execute(t, "surfaces", "--dxf", filepath.Join(t.TempDir(), "missing.dxf"), "--tile", "600x600")
	assert.ErrorContains(t, err, "no surfaces")
}

func TestPresetsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	out, err := execute(t, "presets", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ceramic 12x12")

	shared := filepath.Join(t.TempDir(), "shared.json")
	require.NoError(t, os.WriteFile(shared, []byte(`{"tiles":[{"name":"Hex 8in","width":8,"height":8,"price":4}]}`), 0644))

	out, err = execute(t, "presets", "--file", path, "--import", shared, "--json")
	require.NoError(t, err)
	var p model.Presets
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.NotNil(t, p.FindByName("Hex 8in"))

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(saved), "Hex 8in"), "import should be saved")
}
