package domain

import (
	"time"

	"github.com/google/uuid"
)

// Import is one stored pokédex snapshot. Exactly one import is latest; the
// read API serves its documents.
type Import struct {
	ID          uuid.UUID
	GeneratedAt string
	DataVersion string
	SourceFile  string
	Documents   int
	IsLatest    bool
	CreatedAt   time.Time
}

// SnapshotMeta is the metadata block written alongside every snapshot.
type SnapshotMeta struct {
	GeneratedAt string `json:"generated_at"`
	DataVersion string `json:"data_version"`
}
