package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nithilan10/buildai/internal/cache"
	"github.com/Nithilan10/buildai/internal/engine"
	"github.com/Nithilan10/buildai/internal/export"
	"github.com/Nithilan10/buildai/internal/importer"
	"github.com/Nithilan10/buildai/internal/model"
	"github.com/Nithilan10/buildai/internal/narrative"
)

type reportOptions struct {
	room    string
	tiles   string
	pdf     string
	xlsx    string
	labels  string
	tiered  bool
	wastage float64
	useAI   bool
	asJSON  bool
}

// reportCommand estimates tiles and cost for a room from a tile list.
func (c *CLI) reportCommand() *cobra.Command {
	opts := reportOptions{wastage: model.DefaultWastagePercent}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Estimate tiles, wastage and cost for a room",
		Long: `Estimate the tiles to order for each placed tile of a room.

The tile list is a CSV or Excel file with the columns name, width, height,
surface, price and pattern (header names are matched case-insensitively).
Sizes are in inches, the room in feet. Surfaces are floor, back, front, left
and right.

With --ai the report is requested from a chat-completions endpoint
(OPENAI_API_KEY, optional BUILDAI_NARRATIVE_ENDPOINT) and falls back to the
local calculation on failure.`,
		Example: `  buildai report --room 12x10x8 --tiles tiles.csv
  buildai report --room 12x10x8 --tiles tiles.xlsx --tiered --pdf quote.pdf --labels labels.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReport(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.room, "room", "", "room size in feet as WIDTHxDEPTHxHEIGHT (required)")
	cmd.Flags().StringVar(&opts.tiles, "tiles", "", "tile list (.csv, .tsv, .txt, .xlsx) (required)")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write a PDF report")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write an Excel workbook")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write a PDF sheet of order labels")
	cmd.Flags().BoolVar(&opts.tiered, "tiered", false, "use per-pattern wastage (straight 10%, complex 15%, simple 5%)")
	cmd.Flags().Float64Var(&opts.wastage, "wastage", opts.wastage, "default wastage percentage")
	cmd.Flags().BoolVar(&opts.useAI, "ai", false, "request the report from the narrative provider")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("tiles")

	return cmd
}

func (c *CLI) runReport(ctx context.Context, w io.Writer, opts reportOptions) error {
	room, err := parseRoom(opts.room)
	if err != nil {
		return err
	}

	imported := importer.ImportFile(opts.tiles)
	for _, warn := range imported.Warnings {
		c.Logger.Warn(warn)
	}
	for _, e := range imported.Errors {
		c.Logger.Error(e)
	}
	if len(imported.Tiles) == 0 {
		return fmt.Errorf("no tiles imported from %s", opts.tiles)
	}
	c.Logger.Debug("imported tiles", "count", len(imported.Tiles), "file", opts.tiles)

	settings := model.DefaultEstimateSettings()
	settings.TieredWastage = opts.tiered
	settings.WastagePercent = opts.wastage
	wastage := engine.OptionsFromSettings(settings)

	var provider narrative.Provider
	if opts.useAI {
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return fmt.Errorf("--ai requires OPENAI_API_KEY")
		}
		provider = narrative.NewOpenAIClient(narrative.OpenAIConfig{
			APIKey:   key,
			Endpoint: os.Getenv("BUILDAI_NARRATIVE_ENDPOINT"),
		})
	}
	estimator := narrative.NewEstimator(provider,
		narrative.WithWastageOptions(wastage),
		narrative.WithCache(cache.NewMemoryCache(), cache.DefaultTTL),
		narrative.WithLogger(c.Logger),
	)

	prog := newProgress(c.Logger)
	res, err := estimator.Estimate(ctx, room, imported.Tiles)
	if err != nil {
		return err
	}
	if res.Fallback {
		c.Logger.Warn("using local calculation", "reason", res.FallbackReason)
	}
	prog.done(fmt.Sprintf("Estimated %d surfaces (%s)", len(res.Report.Surfaces), res.Source))

	if err := writeReportFiles(res.Report, room, opts); err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printReport(w, res.Report)
	return nil
}

func writeReportFiles(report *model.WastageReport, room *model.RoomDimensions, opts reportOptions) error {
	if opts.pdf != "" {
		if err := export.ExportReportPDF(opts.pdf, report, room, nil); err != nil {
			return err
		}
	}
	if opts.xlsx != "" {
		if err := export.ExportExcel(opts.xlsx, report); err != nil {
			return err
		}
	}
	if opts.labels != "" {
		if err := export.ExportLabels(opts.labels, report); err != nil {
			return err
		}
	}
	return nil
}

func printReport(w io.Writer, r *model.WastageReport) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SURFACE\tTILE\tSIZE\tNEEDED\tWASTAGE\tORDER\tCOST")
	for _, s := range r.Surfaces {
		size := s.TileSize
		if s.TileSizeAssumed {
			size += " (assumed)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%g%%\t%d\t$%.2f\n",
			s.SurfaceName, s.Name, size, s.TilesNeeded, s.WastagePercentage, s.TotalTilesWithWastage, s.CostEstimate)
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t%d\t%g%%\t%d\t$%.2f\n",
		r.Summary.TotalTilesNeeded, r.Summary.TotalWastagePercentage, r.Summary.TotalTiles, r.Summary.TotalCost)
	tw.Flush()

	fmt.Fprintf(w, "\n%s\n", r.TotalWastage.Reasoning)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
