package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nithilan10/buildai/internal/engine"
	"github.com/Nithilan10/buildai/internal/export"
	"github.com/Nithilan10/buildai/internal/importer"
	"github.com/Nithilan10/buildai/internal/model"
)

type surfacesOptions struct {
	dxf      string
	unit     string
	tile     string
	tileUnit string
	partial  bool
	pdf      string
	asJSON   bool
}

// surfacesCommand lays one tile over every closed shape of a DXF plan.
func (c *CLI) surfacesCommand() *cobra.Command {
	opts := surfacesOptions{unit: string(model.UnitMillimeters), tileUnit: string(model.UnitMillimeters)}

	cmd := &cobra.Command{
		Use:   "surfaces",
		Short: "Lay out tiles over the surfaces of a DXF floor plan",
		Long: `Read closed shapes from a DXF floor plan and compute the tile grid for each.

Every closed polyline, circle or chain of lines and arcs becomes a surface
sized by its bounding box. Non-rectangular outlines are flagged because the
grid of the bounding box over-counts them.`,
		Example: `  buildai surfaces --dxf plan.dxf --tile 600x600 --partial
  buildai surfaces --dxf plan.dxf --unit ft --tile 12x12 --tile-unit in --pdf layouts.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSurfaces(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.dxf, "dxf", "", "DXF floor plan (required)")
	cmd.Flags().StringVar(&opts.unit, "unit", opts.unit, "drawing unit: ft, in, m, cm, mm")
	cmd.Flags().StringVar(&opts.tile, "tile", "", "tile size as WIDTHxHEIGHT (required)")
	cmd.Flags().StringVar(&opts.tileUnit, "tile-unit", opts.tileUnit, "tile unit: ft, in, m, cm, mm")
	cmd.Flags().BoolVar(&opts.partial, "partial", false, "count cut tiles at the edges")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write the layouts to a PDF")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the layouts as JSON")
	_ = cmd.MarkFlagRequired("dxf")
	_ = cmd.MarkFlagRequired("tile")

	return cmd
}

func (c *CLI) runSurfaces(w io.Writer, opts surfacesOptions) error {
	unit, err := model.ParseUnit(opts.unit)
	if err != nil {
		return err
	}
	tile, err := parseTile(opts.tile, opts.tileUnit)
	if err != nil {
		return err
	}

	plan := importer.ImportDXF(opts.dxf, unit)
	for _, warn := range plan.Warnings {
		c.Logger.Warn(warn)
	}
	if len(plan.Errors) > 0 {
		for _, e := range plan.Errors {
			c.Logger.Error(e)
		}
		if len(plan.Surfaces) == 0 {
			return fmt.Errorf("no surfaces read from %s", opts.dxf)
		}
	}

	surfaces := make([]model.Surface, len(plan.Surfaces))
	for i, ps := range plan.Surfaces {
		surfaces[i] = ps.Surface
	}
	layouts, err := engine.ComputeMultiSurfaceLayoutMode(surfaces, tile, opts.partial)
	if err != nil {
		return err
	}

	if opts.pdf != "" {
		if err := writeLayoutPDF(opts.pdf, layouts, tile); err != nil {
			return err
		}
	}

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(layouts)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SURFACE\tSIZE\tSHAPE\tROWS\tCOLUMNS\tTILES")
	for i, l := range layouts {
		shape := "rectangle"
		if !plan.Surfaces[i].Rectangular {
			shape = "irregular"
		}
		fmt.Fprintf(tw, "%s\t%g x %g %s\t%s\t%d\t%d\t%d\n",
			l.Surface.Label, round3(l.Surface.Width), round3(l.Surface.Height), l.Surface.Unit,
			shape, l.Usage.Rows, l.Usage.Columns, l.Usage.TotalTiles)
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t\t\t%d\n", engine.TotalLayoutTiles(layouts))
	return tw.Flush()
}

// writeLayoutPDF renders the layouts after a summary page built from the grid
// counts. Grid counts carry no wastage or price.
func writeLayoutPDF(path string, layouts []model.SurfaceUsage, tile model.Tile) error {
	report := &model.WastageReport{}
	pages := make([]export.LayoutPage, len(layouts))
	for i, l := range layouts {
		pages[i] = export.LayoutPage{Surface: l.Surface, Tile: tile, Usage: l.Usage}
		report.Surfaces = append(report.Surfaces, model.SurfaceEstimate{
			SurfaceName:           l.Surface.Label,
			Dimensions:            fmt.Sprintf("%g x %g %s", round3(l.Surface.Width), round3(l.Surface.Height), l.Surface.Unit),
			TileSize:              fmt.Sprintf("%g x %g %s", tile.Width, tile.Height, tile.Unit),
			TilesNeeded:           l.Usage.TotalTiles,
			TotalTilesWithWastage: l.Usage.TotalTiles,
		})
		report.Summary.TotalTilesNeeded += l.Usage.TotalTiles
		report.Summary.TotalTiles += l.Usage.TotalTiles
	}
	report.TotalWastage.Reasoning = "Grid layout without wastage allowance"
	return export.ExportReportPDF(path, report, nil, pages)
}
