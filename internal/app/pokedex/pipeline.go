// Package pokedex runs the download pipeline: fetch the sheet, transform its
// rows into documents, write a snapshot file and optionally store it.
package pokedex

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/shima-pokedex/internal/app/pokedex/sheet"
	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

// Phase names in execution order.
const (
	PhaseFetch     = "fetch"
	PhaseTransform = "transform"
	PhaseExport    = "export"
	PhaseStore     = "store"
)

// SheetAction is the web app action whose rows follow the sheet.Default
// layout. It is the only action the pipeline fetches.
const SheetAction = "pokemon"

// RowSource supplies raw sheet rows.
type RowSource interface {
	FetchRows(ctx context.Context, action string) ([]sheet.RawRow, error)
}

// SnapshotWriter persists a document collection and reports where.
type SnapshotWriter interface {
	Write(docs []domain.Pokemon) (string, domain.SnapshotMeta, error)
}

// DocumentStore keeps imported snapshots.
type DocumentStore interface {
	SaveImport(ctx context.Context, meta domain.SnapshotMeta, sourceFile string, docs []domain.Pokemon) (domain.Import, error)
}

// Options control a run.
type Options struct {
	// DryRun fetches and transforms without writing a file or the database.
	DryRun bool
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Report summarises the last run.
type Report struct {
	Stats      sheet.Stats
	SnapshotAt string
	Path       string
	Import     *domain.Import
}

// Pipeline orchestrates fetch → transform → export → store.
type Pipeline struct {
	log     *slog.Logger
	source  RowSource
	writer  SnapshotWriter
	store   DocumentStore
	schema  *sheet.Schema
	opts    Options
	results map[string]PhaseResult
	report  Report
}

// NewPipeline creates a Pipeline. store may be nil, which disables the store
// phase.
func NewPipeline(log *slog.Logger, source RowSource, writer SnapshotWriter, store DocumentStore, opts Options) *Pipeline {
	return &Pipeline{
		log:     log.With("component", "pipeline"),
		source:  source,
		writer:  writer,
		store:   store,
		schema:  sheet.Default,
		opts:    opts,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes. Phases that did not
// run are absent.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// Report returns the summary of the last run.
func (p *Pipeline) Report() Report {
	return p.report
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the pipeline. A failed fetch is recorded and the run goes on
// with no rows, so an empty snapshot is still written. The store phase needs
// a written snapshot. Phase failures are reported through Results and
// HasErrors; Run itself only fails when ctx is done.
func (p *Pipeline) Run(ctx context.Context) error {
	p.results = make(map[string]PhaseResult)
	p.report = Report{}

	var rows []sheet.RawRow
	p.phase(PhaseFetch, func() PhaseResult {
		var err error
		rows, err = p.source.FetchRows(ctx, SheetAction)
		if err != nil {
			rows = nil
			return PhaseResult{Err: fmt.Errorf("fetch %s rows: %w", SheetAction, err)}
		}
		return PhaseResult{Inserted: len(rows)}
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	var docs []domain.Pokemon
	p.phase(PhaseTransform, func() PhaseResult {
		res := p.schema.Transform(rows)
		docs = res.Documents
		p.report.Stats = res.Stats

		if res.Stats.CoercionMisses > 0 {
			p.log.Warn("integer cells could not be parsed",
				slog.Int("cells", res.Stats.CoercionMisses),
			)
		}
		return PhaseResult{
			Inserted: res.Stats.Documents,
			Skipped:  res.Stats.EmptyRows + res.Stats.MissingSpecies,
		}
	})

	if p.opts.DryRun {
		p.log.Info("dry run: skipping export and store", slog.Int("documents", len(docs)))
		return nil
	}

	var meta domain.SnapshotMeta
	p.phase(PhaseExport, func() PhaseResult {
		path, m, err := p.writer.Write(docs)
		if err != nil {
			return PhaseResult{Err: fmt.Errorf("write snapshot: %w", err)}
		}
		meta = m
		p.report.Path = path
		p.report.SnapshotAt = m.GeneratedAt
		return PhaseResult{Inserted: len(docs)}
	})

	if p.store == nil {
		return nil
	}
	p.phase(PhaseStore, func() PhaseResult {
		if p.results[PhaseExport].Err != nil {
			p.log.Warn("no snapshot written: skipping store")
			return PhaseResult{Skipped: len(docs)}
		}
		imp, err := p.store.SaveImport(ctx, meta, p.report.Path, docs)
		if err != nil {
			return PhaseResult{Err: fmt.Errorf("store import: %w", err)}
		}
		p.report.Import = &imp
		return PhaseResult{Inserted: imp.Documents}
	})

	return ctx.Err()
}

func (p *Pipeline) phase(name string, fn func() PhaseResult) {
	start := time.Now()
	p.log.Info("starting phase", slog.String("phase", name))

	result := fn()
	result.Duration = time.Since(start)
	p.results[name] = result

	if result.Err != nil {
		p.log.Warn("phase failed",
			slog.String("phase", name),
			slog.String("error", result.Err.Error()),
			slog.Duration("duration", result.Duration),
		)
		return
	}
	p.log.Info("phase completed",
		slog.String("phase", name),
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped),
		slog.Duration("duration", result.Duration),
	)
}
