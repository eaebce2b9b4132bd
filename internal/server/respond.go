package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nithilan10/buildai/internal/model"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeInvalidDimension      = "INVALID_DIMENSION"
	CodeMissingRoomDimensions = "MISSING_ROOM_DIMENSIONS"
	CodeEmptyTileList         = "EMPTY_TILE_LIST"
	CodeUnknownSurface        = "UNKNOWN_SURFACE"
	CodeInvalidJSON           = "INVALID_JSON"
	CodeBodyTooLarge          = "BODY_TOO_LARGE"
	CodeInternal              = "INTERNAL"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

// classify maps calculator errors to an HTTP status and error code.
func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, CodeBodyTooLarge
	case errors.Is(err, model.ErrMissingRoomDimensions):
		return http.StatusBadRequest, CodeMissingRoomDimensions
	case errors.Is(err, model.ErrEmptyTileList):
		return http.StatusBadRequest, CodeEmptyTileList
	case errors.Is(err, model.ErrUnknownSurface):
		return http.StatusBadRequest, CodeUnknownSurface
	case errors.Is(err, model.ErrInvalidDimension):
		return http.StatusBadRequest, CodeInvalidDimension
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeError(w, status, code, err)
}

// decode reads a JSON body of at most s.maxBody bytes into v.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, err)
			return false
		}
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, err)
		return false
	}
	return true
}
