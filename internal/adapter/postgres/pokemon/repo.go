// Package pokemon stores pokédex snapshots in PostgreSQL. Each snapshot is an
// import row plus one jsonb document per pokémon; reads always target the
// latest import.
package pokemon

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/shima-pokedex/internal/adapter/postgres"
	"github.com/heartmarshall/shima-pokedex/internal/domain"
)

// Repo provides pokédex persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new pokemon repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ---------------------------------------------------------------------------
// Write
// ---------------------------------------------------------------------------

const clearLatestSQL = `UPDATE pokedex_imports SET is_latest = false WHERE is_latest`

const insertImportSQL = `
INSERT INTO pokedex_imports (id, generated_at, data_version, source_file, documents, is_latest)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, true)
RETURNING created_at`

const insertPokemonSQL = `
INSERT INTO pokemon (id, import_id, position, species, species_normalized, primary_type, secondary_type, document)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// SaveImport stores docs as a new import and makes it the latest, all in one
// transaction. Document order is kept as position. sourceFile may be empty.
func (r *Repo) SaveImport(ctx context.Context, meta domain.SnapshotMeta, sourceFile string, docs []domain.Pokemon) (domain.Import, error) {
	imp := domain.Import{
		ID:          uuid.New(),
		GeneratedAt: meta.GeneratedAt,
		DataVersion: meta.DataVersion,
		SourceFile:  sourceFile,
		Documents:   len(docs),
		IsLatest:    true,
	}

	batch := &pgx.Batch{}
	for i, d := range docs {
		raw, err := json.Marshal(d)
		if err != nil {
			return domain.Import{}, fmt.Errorf("encode pokemon %q: %w", d.Species, err)
		}
		batch.Queue(insertPokemonSQL,
			uuid.New(), imp.ID, i,
			d.Species, domain.NormalizeSpecies(d.Species),
			d.PrimaryType, d.SecondaryType,
			raw,
		)
	}

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		if _, err := q.Exec(ctx, clearLatestSQL); err != nil {
			return postgres.MapError(err, "import", "")
		}

		err := q.QueryRow(ctx, insertImportSQL,
			imp.ID, imp.GeneratedAt, imp.DataVersion, imp.SourceFile, imp.Documents,
		).Scan(&imp.CreatedAt)
		if err != nil {
			return postgres.MapError(err, "import", imp.ID.String())
		}

		return sendBatchExec(ctx, q, batch)
	})
	if err != nil {
		return domain.Import{}, err
	}

	return imp, nil
}

// sendBatchExec sends a pgx.Batch and checks every Exec result.
func sendBatchExec(ctx context.Context, q postgres.Querier, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for i := range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "pokemon", fmt.Sprintf("position %d", i))
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read
// ---------------------------------------------------------------------------

const latestImportSQL = `
SELECT id, generated_at, data_version, source_file, documents, is_latest, created_at
FROM pokedex_imports
WHERE is_latest`

// LatestImport returns the import currently served.
// Returns domain.ErrNotFound if nothing has been imported yet.
func (r *Repo) LatestImport(ctx context.Context) (domain.Import, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		imp        domain.Import
		sourceFile *string
	)
	err := q.QueryRow(ctx, latestImportSQL).Scan(
		&imp.ID, &imp.GeneratedAt, &imp.DataVersion, &sourceFile, &imp.Documents, &imp.IsLatest, &imp.CreatedAt,
	)
	if err != nil {
		return domain.Import{}, postgres.MapError(err, "latest import", "")
	}
	if sourceFile != nil {
		imp.SourceFile = *sourceFile
	}
	return imp, nil
}

func latestSelect(f domain.PokemonFilter, columns ...string) squirrel.SelectBuilder {
	b := psql.Select(columns...).
		From("pokemon p").
		Join("pokedex_imports i ON i.id = p.import_id").
		Where(squirrel.Eq{"i.is_latest": true})

	if f.Type != "" {
		b = b.Where(squirrel.Or{
			squirrel.Expr("lower(p.primary_type) = ?", f.Type),
			squirrel.Expr("lower(p.secondary_type) = ?", f.Type),
		})
	}
	if f.Query != "" {
		b = b.Where(squirrel.Like{"p.species_normalized": "%" + escapeLike(f.Query) + "%"})
	}
	return b
}

// ListLatest returns the filtered page of documents from the latest import in
// sheet order, with the total number of matches.
func (r *Repo) ListLatest(ctx context.Context, f domain.PokemonFilter) ([]domain.Pokemon, int, error) {
	f = f.Normalize()
	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := latestSelect(f, "count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "pokemon", "")
	}

	listSQL, listArgs, err := latestSelect(f, "p.document").
		OrderBy("p.position").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "pokemon", "")
	}
	defer rows.Close()

	docs := make([]domain.Pokemon, 0, f.Limit)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, 0, fmt.Errorf("scan pokemon: %w", err)
		}
		var d domain.Pokemon
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, 0, fmt.Errorf("decode pokemon: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "pokemon", "")
	}

	return docs, total, nil
}

const getBySpeciesSQL = `
SELECT p.document
FROM pokemon p
JOIN pokedex_imports i ON i.id = p.import_id
WHERE i.is_latest AND p.species_normalized = $1
ORDER BY p.position
LIMIT 1`

// GetBySpecies returns the first document of the latest import whose species
// matches after normalization.
// Returns domain.ErrNotFound if there is none.
func (r *Repo) GetBySpecies(ctx context.Context, species string) (domain.Pokemon, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var raw []byte
	if err := q.QueryRow(ctx, getBySpeciesSQL, domain.NormalizeSpecies(species)).Scan(&raw); err != nil {
		return domain.Pokemon{}, postgres.MapError(err, "pokemon", species)
	}

	var d domain.Pokemon
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.Pokemon{}, fmt.Errorf("decode pokemon %q: %w", species, err)
	}
	return d, nil
}

// Species returns every species name of the latest import in sheet order.
func (r *Repo) Species(ctx context.Context) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := latestSelect(domain.PokemonFilter{}, "p.species").OrderBy("p.position").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build species query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "pokemon", "")
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, postgres.MapError(err, "pokemon", "")
	}
	return names, nil
}

// Ping checks database connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
