package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/jthierer/bubblepack/pkg/pipeline"
)

const sampleData = `[
	{"sector": "Tech", "asset": "Alpha", "investment": 5000000},
	{"sector": "Energy", "asset": "Beta", "investment": 2000000}
]`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	t.Cleanup(func() { _ = runner.Close() })
	return New(runner, logger, Options{})
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestRenderSVG(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s, "/api/render", map[string]any{
		"data": json.RawMessage(sampleData),
		"options": map[string]any{
			"formats":  []string{"svg"},
			"no_synth": true,
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("response body is not SVG")
	}
}

func TestRenderRequiresData(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s, "/api/render", map[string]any{
		"options": map[string]any{"formats": []string{"svg"}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if body["code"] != "INVALID_INPUT" {
		t.Errorf("error code = %v", body["code"])
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s, "/api/render", map[string]any{
		"data": json.RawMessage(sampleData),
		"options": map[string]any{
			"formats": []string{"pdf"},
		},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRenderMalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s, "/api/layout", map[string]any{
		"data": json.RawMessage(sampleData),
		"options": map[string]any{
			"no_synth": true,
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Layout struct {
			Bubbles []struct {
				Label string  `json:"label"`
				R     float64 `json:"r"`
			} `json:"bubbles"`
		} `json:"layout"`
		Stats map[string]int `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Layout.Bubbles) != 2 {
		t.Fatalf("expected 2 bubbles, got %d", len(body.Layout.Bubbles))
	}
	// Largest investment first after size sorting.
	if body.Layout.Bubbles[0].Label != "Alpha" {
		t.Errorf("first bubble = %q, want Alpha", body.Layout.Bubbles[0].Label)
	}
	if body.Layout.Bubbles[0].R <= body.Layout.Bubbles[1].R {
		t.Error("largest investment should get the largest radius")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("X-Request-ID = %q, want upstream-id", got)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated X-Request-ID")
	}
}
