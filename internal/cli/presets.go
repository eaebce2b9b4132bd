package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nithilan10/buildai/internal/model"
	"github.com/Nithilan10/buildai/internal/project"
)

// presetsCommand lists the saved tile presets and imports shared ones.
func (c *CLI) presetsCommand() *cobra.Command {
	var (
		path       string
		importPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List or import tile presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = project.DefaultPresetsPath()
			}
			presets, err := project.LoadPresets(path)
			if err != nil {
				return fmt.Errorf("load presets: %w", err)
			}
			if importPath != "" {
				var added int
				presets, added, err = project.ImportPresets(importPath, presets)
				if err != nil {
					return fmt.Errorf("import presets: %w", err)
				}
				if err := project.SavePresets(path, presets); err != nil {
					return fmt.Errorf("save presets: %w", err)
				}
				c.Logger.Info("imported presets", "added", added, "file", importPath)
			}
			return printPresets(cmd.OutOrStdout(), presets, asJSON)
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "presets file (default: ~/.buildai/presets.json)")
	cmd.Flags().StringVar(&importPath, "import", "", "merge presets from this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the presets as JSON")
	return cmd
}

func printPresets(w io.Writer, p model.Presets, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE (IN)\tMATERIAL\tPRICE")
	for _, t := range p.Tiles {
		fmt.Fprintf(tw, "%s\t%gx%g\t%s\t$%.2f\n", t.Name, t.Width, t.Height, t.Material, t.Price)
	}
	return tw.Flush()
}
