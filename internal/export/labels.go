package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Nithilan10/buildai/internal/model"
)

// LabelInfo is the order data printed on, and QR-encoded into, one label.
type LabelInfo struct {
	Index      int              `json:"line"`
	TileName   string           `json:"tile"`
	Surface    model.SurfaceTag `json:"surface"`
	TileSize   string           `json:"tile_size"`
	Needed     int              `json:"needed"`
	Order      int              `json:"order"`
	Wastage    float64          `json:"wastage_pct"`
	UnitCost   float64          `json:"unit_cost"`
	Cost       float64          `json:"cost"`
	SizeAssume bool             `json:"size_assumed,omitempty"`
}

// Avery 5160 layout: 3 columns x 10 rows of 66.7 x 25.4 mm on US Letter.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos returns one label per surface estimate, in report order.
func CollectLabelInfos(report *model.WastageReport) []LabelInfo {
	if report == nil {
		return nil
	}
	labels := make([]LabelInfo, 0, len(report.Surfaces))
	for i, s := range report.Surfaces {
		name := s.Name
		if name == "" {
			name = surfaceName(s)
		}
		labels = append(labels, LabelInfo{
			Index:      i + 1,
			TileName:   name,
			Surface:    s.Surface,
			TileSize:   s.TileSize,
			Needed:     s.TilesNeeded,
			Order:      s.TotalTilesWithWastage,
			Wastage:    s.WastagePercentage,
			UnitCost:   s.UnitCost,
			Cost:       s.CostEstimate,
			SizeAssume: s.TileSizeAssumed,
		})
	}
	return labels
}

// ExportLabels writes a sheet of QR-coded order labels, one per surface of
// the report, for sticking on tile boxes.
func ExportLabels(path string, report *model.WastageReport) error {
	labels := CollectLabelInfos(report)
	if len(labels) == 0 {
		return fmt.Errorf("no surfaces to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("render label for %q: %w", label.TileName, err)
		}
	}
	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", info.Index)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, info.TileName, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%s - %s", info.Surface.DisplayName(), info.TileSize), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Order %d tiles", info.Order), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+13)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%d + %g%% wastage | %s", info.Needed, info.Wastage, money(info.Cost)), "", 1, "L", false, 0, "")

	if info.SizeAssume {
		pdf.SetXY(textX, y+labelPadding+16.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Tile size assumed", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
