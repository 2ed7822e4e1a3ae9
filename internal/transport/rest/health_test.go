package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

type healthStoreMock struct {
	err       error
	imp       domain.Import
	importErr error
}

func (m *healthStoreMock) Ping(_ context.Context) error {
	return m.err
}

func (m *healthStoreMock) LatestImport(_ context.Context) (domain.Import, error) {
	return m.imp, m.importErr
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&healthStoreMock{}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}

	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady_DBUp(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&healthStoreMock{imp: domain.Import{GeneratedAt: "2024-03-09T14:05:07.000000", DataVersion: "1.0", Documents: 3}}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
}

func TestReady_DBDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&healthStoreMock{err: errors.New("connection refused")}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}
}

func TestHealth_AllOK(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&healthStoreMock{imp: domain.Import{GeneratedAt: "2024-03-09T14:05:07.000000", DataVersion: "1.0", Documents: 3}}, "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}

	if resp.Version != "v1.0.0" {
		t.Errorf("expected version 'v1.0.0', got %q", resp.Version)
	}

	dbComp, ok := resp.Components["store"]
	if !ok {
		t.Fatal("expected 'store' component in response")
	}

	if dbComp.Status != "ok" {
		t.Errorf("expected store status 'ok', got %q", dbComp.Status)
	}
}

func TestHealth_DBDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&healthStoreMock{err: errors.New("connection refused")}, "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "down" {
		t.Errorf("expected status 'down', got %q", resp.Status)
	}

	dbComp, ok := resp.Components["store"]
	if !ok {
		t.Fatal("expected 'store' component in response")
	}

	if dbComp.Status != "down" {
		t.Errorf("expected store status 'down', got %q", dbComp.Status)
	}
}

func TestHealth_IncludesLatency(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&healthStoreMock{imp: domain.Import{GeneratedAt: "2024-03-09T14:05:07.000000", DataVersion: "1.0", Documents: 3}}, "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	dbComp, ok := resp.Components["store"]
	if !ok {
		t.Fatal("expected 'store' component in response")
	}

	if dbComp.Latency == "" {
		t.Error("expected non-empty latency for store component")
	}
}

func TestHealth_IncludesSnapshot(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&healthStoreMock{imp: domain.Import{
		GeneratedAt: "2024-03-09T14:05:07.000000",
		DataVersion: "1.0",
		Documents:   3,
		SourceFile:  "pokemon_data_20240309_140507.json",
	}}, "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Snapshot == nil {
		t.Fatal("expected snapshot in response")
	}
	if resp.Snapshot.Documents != 3 {
		t.Errorf("expected 3 documents, got %d", resp.Snapshot.Documents)
	}
	if resp.Snapshot.DataVersion != "1.0" {
		t.Errorf("expected data_version '1.0', got %q", resp.Snapshot.DataVersion)
	}
	if got := resp.Components["snapshot"].Status; got != "ok" {
		t.Errorf("expected snapshot status 'ok', got %q", got)
	}
}

func TestHealth_NothingImportedIsHealthy(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&healthStoreMock{importErr: domain.ErrNotFound}, "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Snapshot != nil {
		t.Errorf("expected no snapshot, got %+v", resp.Snapshot)
	}
	if got := resp.Components["snapshot"].Status; got != "empty" {
		t.Errorf("expected snapshot status 'empty', got %q", got)
	}
}

func TestHealth_SnapshotReadFailure(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&healthStoreMock{importErr: errors.New("decode failed")}, "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}
