// Package registry stores the hand-curated set of registered species in a
// small JSON file: {"registered": [names...]}.
package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

// Set is a set of registered species. Names are matched by
// domain.NormalizeSpecies; the first spelling added is the one kept.
type Set struct {
	names map[string]string
}

// NewSet builds a Set from names. Blank names are ignored.
func NewSet(names ...string) *Set {
	s := &Set{names: make(map[string]string, len(names))}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add registers name. It reports whether the set changed.
func (s *Set) Add(name string) bool {
	key := domain.NormalizeSpecies(name)
	if key == "" {
		return false
	}
	if _, ok := s.names[key]; ok {
		return false
	}
	s.names[key] = strings.TrimSpace(name)
	return true
}

// Remove unregisters name. It reports whether the set changed.
func (s *Set) Remove(name string) bool {
	key := domain.NormalizeSpecies(name)
	if _, ok := s.names[key]; !ok {
		return false
	}
	delete(s.names, key)
	return true
}

// Contains reports whether name is registered.
func (s *Set) Contains(name string) bool {
	_, ok := s.names[domain.NormalizeSpecies(name)]
	return ok
}

// Len returns the number of registered species.
func (s *Set) Len() int { return len(s.names) }

// Names returns the registered names sorted case-insensitively.
func (s *Set) Names() []string {
	out := make([]string, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b string) int {
		if c := strings.Compare(domain.NormalizeSpecies(a), domain.NormalizeSpecies(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}

// Pending returns the species from the sheet that are not registered, in
// sheet order and without duplicates.
func (s *Set) Pending(species []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range species {
		key := domain.NormalizeSpecies(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := s.names[key]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// Unknown returns registered names that no longer appear in species.
func (s *Set) Unknown(species []string) []string {
	present := make(map[string]bool, len(species))
	for _, name := range species {
		present[domain.NormalizeSpecies(name)] = true
	}
	var out []string
	for _, n := range s.Names() {
		if !present[domain.NormalizeSpecies(n)] {
			out = append(out, n)
		}
	}
	return out
}

type fileFormat struct {
	Registered []string `json:"registered"`
}

// Store loads and saves a Set at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store for path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (st *Store) Path() string { return st.path }

// Load reads the registry file. A missing file yields an empty set.
func (st *Store) Load() (*Set, error) {
	data, err := os.ReadFile(st.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", st.path, err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("registry: decode %s: %w", st.path, err)
	}
	return NewSet(f.Registered...), nil
}

// Save writes the set sorted, with 4-space indentation. The file is
// replaced atomically.
func (st *Store) Save(s *Set) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(fileFormat{Registered: s.Names()}); err != nil {
		return fmt.Errorf("registry: encode: %w", err)
	}

	dir := filepath.Dir(st.path)
	tmp, err := os.CreateTemp(dir, ".registered-*.json")
	if err != nil {
		return fmt.Errorf("registry: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("registry: write temp: %w", err)
	}
	// CreateTemp opens with 0600; keep the mode of the file being replaced.
	mode := os.FileMode(0o644)
	if info, err := os.Stat(st.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("registry: chmod temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("registry: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), st.path); err != nil {
		return fmt.Errorf("registry: replace %s: %w", st.path, err)
	}
	return nil
}
