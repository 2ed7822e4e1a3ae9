package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

// healthStore is the minimal store surface the probes need.
type healthStore interface {
	Ping(ctx context.Context) error
	LatestImport(ctx context.Context) (domain.Import, error)
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	store   healthStore
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(store healthStore, version string) *HealthHandler {
	return &HealthHandler{store: store, version: version}
}

// HealthResponse is the JSON response for /health, /ready and /live.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Snapshot   *SnapshotStatus       `json:"snapshot,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// SnapshotStatus describes the snapshot being served.
type SnapshotStatus struct {
	GeneratedAt string `json:"generated_at"`
	DataVersion string `json:"data_version"`
	Documents   int    `json:"documents"`
	Source      string `json:"source,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Pings the store: 200 if OK, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check: store ping with latency, version and the
// served snapshot. A store with nothing imported yet is healthy.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:     "ok",
		Version:    h.version,
		Components: make(map[string]CompStatus),
	}

	start := time.Now()
	err := h.store.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		resp.Components["store"] = CompStatus{Status: "down"}
		resp.Status = "down"
	} else {
		resp.Components["store"] = CompStatus{Status: "ok", Latency: latency.String()}

		imp, err := h.store.LatestImport(ctx)
		switch {
		case err == nil:
			resp.Components["snapshot"] = CompStatus{Status: "ok"}
			resp.Snapshot = &SnapshotStatus{
				GeneratedAt: imp.GeneratedAt,
				DataVersion: imp.DataVersion,
				Documents:   imp.Documents,
				Source:      imp.SourceFile,
			}
		case errors.Is(err, domain.ErrNotFound):
			resp.Components["snapshot"] = CompStatus{Status: "empty"}
		default:
			resp.Components["snapshot"] = CompStatus{Status: "down"}
			resp.Status = "down"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	resp.Timestamp = time.Now()
	writeJSON(w, status, resp)
}
