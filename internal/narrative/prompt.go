package narrative

import (
	"fmt"
	"strings"

	"github.com/Nithilan10/buildai/internal/model"
)

const systemPrompt = "You are a professional tile installation expert with 20+ years of experience. " +
	"You provide accurate wastage calculations and installation advice."

const reportSchema = `{
  "totalWastage": {"percentage": number, "reasoning": "string"},
  "surfaces": [
    {
      "surface": "floor|back|left|right|front",
      "dimensions": "width x height",
      "tileSize": "width x height inches",
      "tilesNeeded": number,
      "wastagePercentage": number,
      "wastageReasoning": "string",
      "totalTilesWithWastage": number,
      "costEstimate": number
    }
  ],
  "recommendations": ["string"],
  "installationTips": ["string"]
}`

// buildPrompt renders the user message for req.
func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Calculate the exact tile wastage for a room renovation project.\n\n")

	fmt.Fprintf(&b, "ROOM DIMENSIONS:\n- Width: %g feet\n- Depth: %g feet\n- Height: %g feet\n\n",
		req.Room.Width, req.Room.Depth, req.Room.Height)

	b.WriteString("PLACED TILES:\n")
	for i, t := range req.Tiles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Name)
		fmt.Fprintf(&b, "   - Tile Size: %s x %s inches\n", sizeOrUnknown(t.Dimensions.Width), sizeOrUnknown(t.Dimensions.Height))
		fmt.Fprintf(&b, "   - Surface: %s (%s)\n", t.Surface, t.Surface.DisplayName())
		if s, err := req.Room.Surface(t.Surface); err == nil {
			fmt.Fprintf(&b, "   - Coverage: %g x %g feet\n", s.Width, s.Height)
		}
		if t.Pattern != model.ComplexityUnspecified {
			fmt.Fprintf(&b, "   - Pattern: %s\n", t.Pattern)
		}
	}

	b.WriteString(`
CALCULATION REQUIREMENTS:
1. Calculate tiles needed for each surface
2. Apply standard installation wastage:
   - 10% for straight cuts
   - 15% for complex patterns
   - 5% for simple rectangular layouts
3. Consider tile orientation, pattern matching and grout lines
4. Include extra tiles for future repairs

Respond with JSON in exactly this format:
`)
	b.WriteString(reportSchema)
	b.WriteString("\n")
	return b.String()
}

func sizeOrUnknown(v float64) string {
	if v <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%g", v)
}
