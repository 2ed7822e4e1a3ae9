package sheet

import "github.com/heartmarshall/shima-pokedex/internal/domain"

// Stats summarises one Transform call. Skipped rows are expected in a sparse
// sheet and are counted rather than reported as errors.
type Stats struct {
	TotalRows      int
	EmptyRows      int
	MissingSpecies int
	Documents      int
	CoercionMisses int
}

// Result is the output of Transform: surviving documents in input order.
type Result struct {
	Documents []domain.Pokemon
	Stats     Stats
}

// Transform maps and assembles every row against the schema, preserving
// input order. Rows are independent of each other; an empty or nil input
// yields an empty, non-nil document slice.
func (s *Schema) Transform(rows []RawRow) Result {
	res := Result{Documents: make([]domain.Pokemon, 0, len(rows))}
	res.Stats.TotalRows = len(rows)

	for _, row := range rows {
		rec, ok := s.MapRow(row)
		if !ok {
			res.Stats.EmptyRows++
			continue
		}
		res.Stats.CoercionMisses += rec.CoercionMisses

		doc, ok := Assemble(rec)
		if !ok {
			res.Stats.MissingSpecies++
			continue
		}
		res.Documents = append(res.Documents, doc)
	}

	res.Stats.Documents = len(res.Documents)
	return res
}

// Transform runs the Default schema over rows.
func Transform(rows []RawRow) Result {
	return Default.Transform(rows)
}

// SpeciesNames returns the Species cell of every row that would assemble
// into a document, in order, without assembling it.
func (s *Schema) SpeciesNames(rows []RawRow) []string {
	i, _ := s.Index(colSpecies)
	var names []string
	for _, row := range rows {
		if i >= len(row) {
			continue
		}
		if name, ok := cellText(row[i]); ok {
			names = append(names, name)
		}
	}
	return names
}
