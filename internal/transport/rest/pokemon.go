package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

// pokemonStore reads documents of the served snapshot.
type pokemonStore interface {
	ListLatest(ctx context.Context, f domain.PokemonFilter) ([]domain.Pokemon, int, error)
	GetBySpecies(ctx context.Context, species string) (domain.Pokemon, error)
}

// PokemonHandler serves /api/pokemon.
type PokemonHandler struct {
	store pokemonStore
	log   *slog.Logger
}

// NewPokemonHandler creates a PokemonHandler.
func NewPokemonHandler(store pokemonStore, logger *slog.Logger) *PokemonHandler {
	return &PokemonHandler{store: store, log: logger.With("handler", "pokemon")}
}

// ListResponse is one page of documents.
type ListResponse struct {
	Pokemon []domain.Pokemon `json:"pokemon"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// List handles GET /api/pokemon?type=&q=&limit=&offset=.
func (h *PokemonHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	f = f.Normalize()

	docs, total, err := h.store.ListLatest(r.Context(), f)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if docs == nil {
		docs = []domain.Pokemon{}
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Pokemon: docs,
		Total:   total,
		Limit:   f.Limit,
		Offset:  f.Offset,
	})
}

// Get handles GET /api/pokemon/{species}.
func (h *PokemonHandler) Get(w http.ResponseWriter, r *http.Request) {
	species := chi.URLParam(r, "species")
	if s, err := url.PathUnescape(species); err == nil {
		species = s
	}

	doc, err := h.store.GetBySpecies(r.Context(), species)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func parseFilter(r *http.Request) (domain.PokemonFilter, error) {
	q := r.URL.Query()
	f := domain.PokemonFilter{
		Type:  q.Get("type"),
		Query: q.Get("q"),
	}

	verr := &domain.ValidationError{}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			verr.Add("limit", "must be a positive integer")
		}
		f.Limit = n
	}
	if s := q.Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			verr.Add("offset", "must be a non-negative integer")
		}
		f.Offset = n
	}
	return f, verr.OrNil()
}
