package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"tradethrust/internal/collector"
	"tradethrust/internal/engine"
	"tradethrust/internal/scan"
	"tradethrust/internal/watchlist"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := engine.New(engine.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	ms := collector.NewMultiSource(zap.NewNop(), &collector.MockFetcher{})
	svc := &scan.Service{
		Collector: collector.NewCollector(ms, "", 300, zap.NewNop()),
		Engine:    eng,
		Logger:    zap.NewNop(),
	}
	wl, err := watchlist.NewManager(filepath.Join(t.TempDir(), "wl.json"), []string{"NVDA"})
	if err != nil {
		t.Fatal(err)
	}
	return New(svc, wl, ":0", false, zap.NewNop())
}

func do(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected ok status, got %v", body["status"])
	}
	if body["watchlist_size"].(float64) != 1 {
		t.Errorf("expected watchlist size 1, got %v", body["watchlist_size"])
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/analyze/NVDA")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["symbol"] != "NVDA" {
		t.Errorf("expected NVDA payload, got %v", body["symbol"])
	}
	if _, ok := body["composite_score"]; !ok {
		t.Error("response should carry the composite score")
	}
}

func TestWatchlistEndpoints(t *testing.T) {
	s := newTestServer(t)

	if w := do(t, s, http.MethodPost, "/api/watchlist/amd"); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if w := do(t, s, http.MethodPost, "/api/watchlist/AMD"); w.Code != http.StatusConflict {
		t.Errorf("duplicate add should 409, got %d", w.Code)
	}

	w := do(t, s, http.MethodGet, "/api/watchlist")
	var body struct {
		Symbols []string `json:"symbols"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Symbols) != 2 || body.Symbols[0] != "AMD" {
		t.Errorf("expected sorted [AMD NVDA], got %v", body.Symbols)
	}

	if w := do(t, s, http.MethodDelete, "/api/watchlist/AMD"); w.Code != http.StatusOK {
		t.Errorf("expected 200 on remove, got %d", w.Code)
	}
	if w := do(t, s, http.MethodDelete, "/api/watchlist/TSLA"); w.Code != http.StatusNotFound {
		t.Errorf("removing an absent symbol should 404, got %d", w.Code)
	}
}
