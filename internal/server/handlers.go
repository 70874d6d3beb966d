package server

import (
	"encoding/json"
	"net/http"

	"github.com/jthierer/bubblepack/pkg/buildinfo"
	"github.com/jthierer/bubblepack/pkg/errors"
	"github.com/jthierer/bubblepack/pkg/pipeline"
)

// renderRequest is the body of POST /api/render and /api/layout. The
// dataset travels inline; file paths are not accepted over HTTP.
type renderRequest struct {
	Data    json.RawMessage  `json:"data"`
	Options pipeline.Options `json:"options"`
}

// contentTypes maps output formats to response MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatCSV:  "text/csv",
	pipeline.FormatTSV:  "text/tab-separated-values",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleRender runs the full pipeline and returns the first requested
// format as the response body. Multi-format requests should call once
// per format; cached stages make the repeat calls cheap.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// handleLayout runs load and layout only, returning the positioned
// bubbles as JSON without rendering.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	d, _, _, err := s.runner.LoadWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, stats, _, err := s.runner.GenerateLayoutWithCacheInfo(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"layout": l,
		"stats": map[string]int{
			"fallbacks":    stats.Fallbacks,
			"last_resorts": stats.LastResorts,
		},
	})
}

// decodeOptions parses and validates the request body. On failure it
// writes the error response and returns ok=false.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body"))
		return pipeline.Options{}, false
	}
	if len(req.Data) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "dataset is required"))
		return pipeline.Options{}, false
	}

	opts := req.Options
	opts.Input = ""
	opts.Data = req.Data
	opts.Logger = s.logger

	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options"))
		return pipeline.Options{}, false
	}
	return opts, true
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRadius, errors.ErrCodeInvalidDataset,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidPalette,
		errors.ErrCodeInvalidLayout, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	s.logger.Error("request failed",
		"error", err,
		"code", code,
		"request_id", RequestID(r.Context()))

	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(code),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
