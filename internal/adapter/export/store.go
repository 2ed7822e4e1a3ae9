package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

// FileStore serves the newest snapshot file in a directory with the same
// read surface as the database store. The file is re-read when a newer
// snapshot appears or the current one changes on disk.
type FileStore struct {
	dir    string
	prefix string
	log    *slog.Logger

	mu      sync.Mutex
	path    string
	modTime int64
	snap    *Snapshot
	index   map[string]int
}

// NewFileStore creates a FileStore over snapshots named {prefix}_*.json in dir.
func NewFileStore(dir, prefix string, logger *slog.Logger) *FileStore {
	return &FileStore{
		dir:    dir,
		prefix: prefix,
		log:    logger.With("adapter", "export_store"),
	}
}

func (s *FileStore) current() (*Snapshot, string, map[string]int, error) {
	path, err := Latest(s.dir, s.prefix)
	if err != nil {
		return nil, "", nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("export: stat %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil && s.path == path && s.modTime == info.ModTime().UnixNano() {
		return s.snap, s.path, s.index, nil
	}

	snap, err := Read(path)
	if err != nil {
		return nil, "", nil, err
	}
	index := make(map[string]int, len(snap.Pokemon))
	for i, p := range snap.Pokemon {
		key := domain.NormalizeSpecies(p.Species)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	s.path, s.modTime, s.snap, s.index = path, info.ModTime().UnixNano(), snap, index
	s.log.Info("snapshot loaded", slog.String("path", path), slog.Int("documents", len(snap.Pokemon)))
	return snap, path, index, nil
}

// LatestImport describes the snapshot being served. ID is always uuid.Nil.
func (s *FileStore) LatestImport(_ context.Context) (domain.Import, error) {
	snap, path, _, err := s.current()
	if err != nil {
		return domain.Import{}, err
	}

	imp := domain.Import{
		GeneratedAt: snap.Metadata.GeneratedAt,
		DataVersion: snap.Metadata.DataVersion,
		SourceFile:  path,
		Documents:   len(snap.Pokemon),
		IsLatest:    true,
	}
	if info, err := os.Stat(path); err == nil {
		imp.CreatedAt = info.ModTime()
	}
	return imp, nil
}

// ListLatest filters and pages the served snapshot in file order.
func (s *FileStore) ListLatest(_ context.Context, f domain.PokemonFilter) ([]domain.Pokemon, int, error) {
	snap, _, _, err := s.current()
	if err != nil {
		return nil, 0, err
	}
	f = f.Normalize()

	docs := make([]domain.Pokemon, 0, f.Limit)
	total := 0
	for _, p := range snap.Pokemon {
		if !f.Matches(p) {
			continue
		}
		if total >= f.Offset && len(docs) < f.Limit {
			docs = append(docs, p)
		}
		total++
	}
	return docs, total, nil
}

// GetBySpecies returns the first document whose normalized species matches.
// Returns domain.ErrNotFound if there is none.
func (s *FileStore) GetBySpecies(_ context.Context, species string) (domain.Pokemon, error) {
	snap, _, index, err := s.current()
	if err != nil {
		return domain.Pokemon{}, err
	}
	i, ok := index[domain.NormalizeSpecies(species)]
	if !ok {
		return domain.Pokemon{}, fmt.Errorf("pokemon %q: %w", species, domain.ErrNotFound)
	}
	return snap.Pokemon[i], nil
}

// Species returns every species name of the served snapshot in file order.
func (s *FileStore) Species(_ context.Context) ([]string, error) {
	snap, _, _, err := s.current()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(snap.Pokemon))
	for i, p := range snap.Pokemon {
		names[i] = p.Species
	}
	return names, nil
}

// Ping reports whether the snapshot directory is reachable.
func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("export: snapshot dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("export: %s is not a directory: %w", s.dir, domain.ErrUnavailable)
	}
	return nil
}
