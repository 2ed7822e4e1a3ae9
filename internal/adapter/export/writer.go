// Package export writes and reads pokédex snapshot files.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

const (
	// DataVersion is stamped into every snapshot's metadata.
	DataVersion = "1.0"

	// GeneratedAtLayout matches an ISO-8601 local timestamp with microseconds.
	GeneratedAtLayout = "2006-01-02T15:04:05.000000"

	fileStampLayout = "20060102_150405"
)

// Snapshot is the persisted envelope.
type Snapshot struct {
	Pokemon  []domain.Pokemon    `json:"pokemon"`
	Metadata domain.SnapshotMeta `json:"metadata"`
}

// Writer serialises snapshots to {dir}/{prefix}_{YYYYMMDD_HHMMSS}.json.
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time
	log    *slog.Logger
}

// NewWriter creates a Writer.
func NewWriter(dir, prefix string, logger *slog.Logger) *Writer {
	return &Writer{
		dir:    dir,
		prefix: prefix,
		now:    time.Now,
		log:    logger.With("adapter", "export"),
	}
}

// NewSnapshot wraps docs in the envelope, stamped at now. A nil docs slice
// encodes as an empty array.
func NewSnapshot(docs []domain.Pokemon, now time.Time) Snapshot {
	if docs == nil {
		docs = []domain.Pokemon{}
	}
	return Snapshot{
		Pokemon: docs,
		Metadata: domain.SnapshotMeta{
			GeneratedAt: now.Format(GeneratedAtLayout),
			DataVersion: DataVersion,
		},
	}
}

// Write encodes docs and writes them to a new timestamped file. It returns
// the path written and the snapshot metadata.
func (w *Writer) Write(docs []domain.Pokemon) (string, domain.SnapshotMeta, error) {
	now := w.now()
	snap := NewSnapshot(docs, now)

	data, err := Encode(snap)
	if err != nil {
		return "", domain.SnapshotMeta{}, fmt.Errorf("export: encode: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", domain.SnapshotMeta{}, fmt.Errorf("export: create dir %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, w.FileName(now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", domain.SnapshotMeta{}, fmt.Errorf("export: write %s: %w", path, err)
	}

	w.log.Info("snapshot written",
		slog.String("path", path),
		slog.Int("pokemon", len(snap.Pokemon)),
		slog.Int("bytes", len(data)),
	)

	return path, snap.Metadata, nil
}

// FileName returns the snapshot file name for t.
func (w *Writer) FileName(t time.Time) string {
	return w.prefix + "_" + t.Format(fileStampLayout) + ".json"
}

// Encode renders a snapshot as 2-space indented JSON. Non-ASCII text and
// HTML characters are written verbatim.
func Encode(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Read decodes a snapshot file.
func Read(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: read %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("export: decode %s: %w", path, err)
	}
	if snap.Pokemon == nil {
		snap.Pokemon = []domain.Pokemon{}
	}
	return &snap, nil
}

// Latest returns the most recent snapshot file for prefix in dir, relying on
// the sortable timestamp in the name. It returns domain.ErrNotFound when
// there is none.
func Latest(dir, prefix string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"_*.json"))
	if err != nil {
		return "", fmt.Errorf("export: glob: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("export: no %s snapshot in %s: %w", prefix, dir, domain.ErrNotFound)
	}
	latest := matches[0]
	for _, m := range matches[1:] {
		if filepath.Base(m) > filepath.Base(latest) {
			latest = m
		}
	}
	return latest, nil
}
