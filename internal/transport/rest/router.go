// Package rest is the read-only HTTP API over the served pokédex snapshot.
package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/shima-pokedex/internal/domain"
	"github.com/heartmarshall/shima-pokedex/internal/transport/middleware"
)

// Store is everything the API reads. Both the postgres repository and the
// snapshot file store implement it.
type Store interface {
	Ping(ctx context.Context) error
	LatestImport(ctx context.Context) (domain.Import, error)
	ListLatest(ctx context.Context, f domain.PokemonFilter) ([]domain.Pokemon, int, error)
	GetBySpecies(ctx context.Context, species string) (domain.Pokemon, error)
	Species(ctx context.Context) ([]string, error)
}

// Deps wires the router.
type Deps struct {
	Store       Store
	Registry    registryLoader
	Version     string
	CORSOrigins string
	Logger      *slog.Logger
}

// NewRouter mounts the probes and the /api routes.
func NewRouter(d Deps) http.Handler {
	health := NewHealthHandler(d.Store, d.Version)
	pokemon := NewPokemonHandler(d.Store, d.Logger)
	registered := NewRegisteredHandler(d.Registry, d.Store, d.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, d.Logger, domain.ErrNotFound)
	})

	r.Get("/live", health.Live)
	r.Get("/ready", health.Ready)
	r.Get("/health", health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(d.CORSOrigins))

		r.Get("/pokemon", pokemon.List)
		r.Get("/pokemon/{species}", pokemon.Get)
		r.Get("/registered", registered.List)
	})

	return r
}
