package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Nithilan10/buildai/internal/engine"
	"github.com/Nithilan10/buildai/internal/model"
)

type layoutOptions struct {
	surface     string
	surfaceUnit string
	tile        string
	tileUnit    string
	partial     bool
	asJSON      bool
}

// layoutCommand computes the grid layout of one tile over one surface.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOptions

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute how many tiles fit on a surface",
		Long: `Compute the grid layout of one tile size over one rectangular surface.

Without --partial only whole tiles are counted and the uncovered strips are
reported as leftovers. With --partial edge tiles are cut to size and counted.`,
		Example: `  buildai layout --surface 10x8 --unit ft --tile 12x12 --tile-unit in
  buildai layout --surface 300x240 --tile 30x60 --partial`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.surface, "surface", "", "surface size as WIDTHxHEIGHT (required)")
	cmd.Flags().StringVar(&opts.surfaceUnit, "unit", "", "surface unit: ft, in, m, cm, mm (default: tile unit)")
	cmd.Flags().StringVar(&opts.tile, "tile", "", "tile size as WIDTHxHEIGHT (required)")
	cmd.Flags().StringVar(&opts.tileUnit, "tile-unit", "", "tile unit: ft, in, m, cm, mm")
	cmd.Flags().BoolVar(&opts.partial, "partial", false, "count cut tiles at the edges")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("surface")
	_ = cmd.MarkFlagRequired("tile")

	return cmd
}

func (c *CLI) runLayout(w io.Writer, opts layoutOptions) error {
	surface, err := parseSurface(opts.surface, opts.surfaceUnit)
	if err != nil {
		return err
	}
	tile, err := parseTile(opts.tile, opts.tileUnit)
	if err != nil {
		return err
	}

	usage, err := engine.ComputeTileLayout(surface, tile, opts.partial)
	if err != nil {
		var dimErr *model.DimensionError
		if errors.As(err, &dimErr) && dimErr.Field == "tile.unit" && tile.Unit == "" {
			return fmt.Errorf("--tile-unit is required when --unit is set: %w", err)
		}
		return err
	}
	c.Logger.Debug("layout computed", "surface", opts.surface, "tile", opts.tile, "partial", opts.partial)

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(usage)
	}
	printUsage(w, usage, tile.Unit)
	return nil
}

func printUsage(w io.Writer, u model.TileUsage, unit model.Unit) {
	fmt.Fprintf(w, "Rows:            %d\n", u.Rows)
	fmt.Fprintf(w, "Columns:         %d\n", u.Columns)
	fmt.Fprintf(w, "Total tiles:     %d\n", u.TotalTiles)
	if u.AllowPartial {
		fmt.Fprintf(w, "Cut tiles:       %d\n", u.CutTiles())
	}
	fmt.Fprintf(w, "Leftover width:  %g %s\n", round3(u.LeftoverWidth), unit)
	fmt.Fprintf(w, "Leftover height: %g %s\n", round3(u.LeftoverHeight), unit)
}
