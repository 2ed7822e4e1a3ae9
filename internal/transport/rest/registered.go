package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/shima-pokedex/internal/adapter/registry"
	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

type registryLoader interface {
	Load() (*registry.Set, error)
}

type speciesLister interface {
	Species(ctx context.Context) ([]string, error)
}

// RegisteredHandler serves /api/registered.
type RegisteredHandler struct {
	registry registryLoader
	species  speciesLister
	log      *slog.Logger
}

// NewRegisteredHandler creates a RegisteredHandler.
func NewRegisteredHandler(reg registryLoader, species speciesLister, logger *slog.Logger) *RegisteredHandler {
	return &RegisteredHandler{registry: reg, species: species, log: logger.With("handler", "registered")}
}

// RegisteredResponse lists the curated names. Unknown holds registered names
// missing from the served snapshot; it is null when nothing has been
// imported yet.
type RegisteredResponse struct {
	Registered []string `json:"registered"`
	Unknown    []string `json:"unknown"`
}

// List handles GET /api/registered. The registry file is read on every
// request so edits made by the register command show up immediately.
func (h *RegisteredHandler) List(w http.ResponseWriter, r *http.Request) {
	set, err := h.registry.Load()
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp := RegisteredResponse{Registered: set.Names()}

	species, err := h.species.Species(r.Context())
	switch {
	case err == nil:
		resp.Unknown = set.Unknown(species)
		if resp.Unknown == nil {
			resp.Unknown = []string{}
		}
	case errors.Is(err, domain.ErrNotFound):
	default:
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
