//go:build e2e

package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/shima-pokedex/internal/adapter/export"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/postgres"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/postgres/pokemon"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/provider/appscript"
	"github.com/heartmarshall/shima-pokedex/internal/adapter/registry"
	"github.com/heartmarshall/shima-pokedex/internal/app/pokedex"
	"github.com/heartmarshall/shima-pokedex/internal/transport/rest"
)

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// fakeSheet stands in for the Apps Script web app. The payload can be
// swapped between downloads.
type fakeSheet struct {
	mu   sync.Mutex
	body string
	srv  *httptest.Server
}

func newFakeSheet(t *testing.T, body string) *fakeSheet {
	t.Helper()
	f := &fakeSheet{body: body}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") != appscript.ActionPokemon {
			http.Error(w, "unknown action", http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(f.body))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeSheet) set(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.body = body
}

// stack is the downloader and the read API over shared storage.
type stack struct {
	t        *testing.T
	logger   *slog.Logger
	sheet    *fakeSheet
	writer   *export.Writer
	store    pokedex.DocumentStore
	registry *registry.Store
	api      *httptest.Server
}

// setupDBStack wires the pipeline and the API against a real PostgreSQL.
func setupDBStack(t *testing.T, sheetBody string) *stack {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	_, err := pool.Exec(context.Background(), "TRUNCATE pokemon, pokedex_imports")
	require.NoError(t, err)

	repo := pokemon.New(pool, postgres.NewTxManager(pool))
	return newStack(t, sheetBody, repo, repo)
}

// setupFileStack serves snapshot files with no database.
func setupFileStack(t *testing.T, sheetBody string) *stack {
	t.Helper()
	return newStack(t, sheetBody, nil, nil)
}

func newStack(t *testing.T, sheetBody string, store pokedex.DocumentStore, served rest.Store) *stack {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	s := &stack{
		t:        t,
		logger:   logger,
		sheet:    newFakeSheet(t, sheetBody),
		writer:   export.NewWriter(dir, "pokemon_data", logger),
		store:    store,
		registry: registry.NewStore(filepath.Join(dir, "registered_pokemon.json")),
	}
	if served == nil {
		served = export.NewFileStore(dir, "pokemon_data", logger)
	}

	s.api = httptest.NewServer(rest.NewRouter(rest.Deps{
		Store:       served,
		Registry:    s.registry,
		Version:     "e2e",
		CORSOrigins: "*",
		Logger:      logger,
	}))
	t.Cleanup(s.api.Close)
	return s
}

// download runs one pipeline pass and returns it for inspection.
func (s *stack) download() *pokedex.Pipeline {
	s.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	source := appscript.NewProvider(s.sheet.srv.URL, 5*time.Second, s.logger)
	p := pokedex.NewPipeline(s.logger, source, s.writer, s.store, pokedex.Options{})
	require.NoError(s.t, p.Run(ctx))
	return p
}

// get issues a GET against the API and decodes the JSON body into v.
func (s *stack) get(path string, v any) int {
	s.t.Helper()

	resp, err := http.Get(s.api.URL + path)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	if v != nil {
		require.NoError(s.t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}
