package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/Nithilan10/buildai/internal/engine"
	"github.com/Nithilan10/buildai/internal/export"
	"github.com/Nithilan10/buildai/internal/model"
	"github.com/Nithilan10/buildai/internal/narrative"
)

type layoutRequest struct {
	Surface      model.Surface `json:"surface"`
	Tile         model.Tile    `json:"tile"`
	AllowPartial bool          `json:"allowPartial"`
}

type multiLayoutRequest struct {
	Surfaces     []model.Surface `json:"surfaces"`
	Tile         model.Tile      `json:"tile"`
	AllowPartial bool            `json:"allowPartial"`
}

type wastageRequest struct {
	Room  *model.RoomDimensions `json:"roomDimensions"`
	Tiles []model.PlacedTile    `json:"placedTiles"`
}

type wastageResponse struct {
	Success bool `json:"success"`
	narrative.Result
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}{Status: "ok", Timestamp: time.Now().UTC()})
}

func (s *Server) handleTileLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !s.decode(w, r, &req) {
		return
	}
	usage, err := engine.ComputeTileLayout(req.Surface, req.Tile, req.AllowPartial)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

func (s *Server) handleMultiLayout(w http.ResponseWriter, r *http.Request) {
	var req multiLayoutRequest
	if !s.decode(w, r, &req) {
		return
	}
	layouts, err := engine.ComputeMultiSurfaceLayoutMode(req.Surfaces, req.Tile, req.AllowPartial)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layouts)
}

func (s *Server) handleCalculateWastage(w http.ResponseWriter, r *http.Request) {
	var req wastageRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.estimator.Estimate(r.Context(), req.Room, req.Tiles)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wastageResponse{Success: true, Result: res})
}

func (s *Server) localReport(w http.ResponseWriter, r *http.Request) (*model.WastageReport, *model.RoomDimensions, bool) {
	var req wastageRequest
	if !s.decode(w, r, &req) {
		return nil, nil, false
	}
	report, err := engine.ComputeWastageReportWithOptions(req.Room, req.Tiles, s.wastage)
	if err != nil {
		s.fail(w, r, err)
		return nil, nil, false
	}
	return report, req.Room, true
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	report, room, ok := s.localReport(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteReportPDF(&buf, report, room, nil); err != nil {
		s.fail(w, r, err)
		return
	}
	sendFile(w, "application/pdf", "tile-report.pdf", buf.Bytes())
}

func (s *Server) handleReportExcel(w http.ResponseWriter, r *http.Request) {
	report, _, ok := s.localReport(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteExcel(&buf, report); err != nil {
		s.fail(w, r, err)
		return
	}
	sendFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "tile-report.xlsx", buf.Bytes())
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.presets)
}

func sendFile(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
