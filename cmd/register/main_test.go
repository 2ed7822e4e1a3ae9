package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	config   string
	registry string
}

func setup(t *testing.T, sheetBody string) env {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sheetBody))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	e := env{
		config:   filepath.Join(dir, "config.yaml"),
		registry: filepath.Join(dir, "registered_pokemon.json"),
	}
	yaml := fmt.Sprintf(`
source:
  base_url: %q
export:
  dir: %q
registry:
  path: %q
log:
  level: error
`, srv.URL, dir, e.registry)
	require.NoError(t, os.WriteFile(e.config, []byte(yaml), 0o644))
	return e
}

func run(t *testing.T, e env, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--config", e.config))
	err := cmd.Execute()
	return out.String(), err
}

const sheetRows = `[
	[null, 1, "Bulbasaur"],
	[null, 4, "Charmander"],
	[],
	[null, 122, "Mr. Mime"],
	[null, 999, "  "]
]`

func TestRegister_AddListRemove(t *testing.T) {
	e := setup(t, sheetRows)

	out, err := run(t, e, "list")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, e, "add", "Bulbasaur", "mr. mime", "bulbasaur")
	require.NoError(t, err)
	assert.Equal(t, "added: Bulbasaur\nadded: mr. mime\nalready registered: bulbasaur\n", out)

	data, err := os.ReadFile(e.registry)
	require.NoError(t, err)
	assert.JSONEq(t, `{"registered": ["Bulbasaur", "mr. mime"]}`, string(data))

	out, err = run(t, e, "list")
	require.NoError(t, err)
	assert.Equal(t, "Bulbasaur\nmr. mime\n", out)

	out, err = run(t, e, "remove", "MR. MIME", "Pikachu")
	require.NoError(t, err)
	assert.Equal(t, "removed: MR. MIME\nnot registered: Pikachu\n", out)

	out, err = run(t, e, "list")
	require.NoError(t, err)
	assert.Equal(t, "Bulbasaur\n", out)
}

func TestRegister_AddRequiresNames(t *testing.T) {
	e := setup(t, sheetRows)

	_, err := run(t, e, "add")
	assert.Error(t, err)
}

func TestRegister_PendingAndUnknown(t *testing.T) {
	e := setup(t, sheetRows)

	_, err := run(t, e, "add", "Bulbasaur", "Missingno")
	require.NoError(t, err)

	out, err := run(t, e, "pending")
	require.NoError(t, err)
	assert.Equal(t, "Charmander\nMr. Mime\n", out)

	out, err = run(t, e, "unknown")
	require.NoError(t, err)
	assert.Equal(t, "Missingno\n", out)
}

func TestRegister_FromSnapshotWithoutSnapshot(t *testing.T) {
	e := setup(t, sheetRows)

	_, err := run(t, e, "pending", "--from", "snapshot")
	assert.Error(t, err)
}

func TestRegister_InvalidSource(t *testing.T) {
	e := setup(t, sheetRows)

	_, err := run(t, e, "unknown", "--from", "ftp")
	assert.ErrorContains(t, err, "--from")
}

func TestRegister_SheetFailure(t *testing.T) {
	e := setup(t, `{"error": "quota"}`)

	_, err := run(t, e, "pending")
	assert.Error(t, err)
}
