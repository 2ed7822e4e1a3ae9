package sheet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawRow is one decoded sheet row. Cells are whatever the JSON decoder
// produced: string, json.Number, float64, bool or nil. Rows may be shorter or
// longer than the schema.
type RawRow []any

// Value is a single mapped cell: absent, an integer or a string.
type Value struct {
	kind valueKind
	s    string
	n    int
}

type valueKind uint8

const (
	valueAbsent valueKind = iota
	valueString
	valueInt
)

// IsAbsent reports whether the cell was missing, empty or failed coercion.
func (v Value) IsAbsent() bool { return v.kind == valueAbsent }

// Text returns the string value, if any.
func (v Value) Text() (string, bool) { return v.s, v.kind == valueString }

// Int returns the integer value, if any.
func (v Value) Int() (int, bool) { return v.n, v.kind == valueInt }

// Any returns nil, an int or a string.
func (v Value) Any() any {
	switch v.kind {
	case valueString:
		return v.s
	case valueInt:
		return v.n
	default:
		return nil
	}
}

// FlatRecord is a row zipped against a schema: one Value per column.
type FlatRecord struct {
	schema *Schema
	values []Value

	// CoercionMisses counts integer columns whose cell was present but did
	// not parse as a base-10 integer. Those fields are absent.
	CoercionMisses int
}

// Get returns the value of the named column.
func (r FlatRecord) Get(name string) (Value, bool) {
	if r.schema == nil {
		return Value{}, false
	}
	i, ok := r.schema.Index(name)
	if !ok {
		return Value{}, false
	}
	return r.values[i], true
}

// Map returns the record as column name → nil | int | string.
func (r FlatRecord) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	if r.schema == nil {
		return m
	}
	for i, c := range r.schema.columns {
		m[c.Name] = r.values[i].Any()
	}
	return m
}

// text and integer return nil for absent values and for columns the schema
// does not declare.
func (r FlatRecord) text(name string) *string {
	v, _ := r.Get(name)
	if s, ok := v.Text(); ok {
		return &s
	}
	return nil
}

func (r FlatRecord) integer(name string) *int {
	v, _ := r.Get(name)
	if n, ok := v.Int(); ok {
		return &n
	}
	return nil
}

// MapRow zips row against the schema. Missing and empty cells become absent;
// integer columns are parsed leniently (a malformed number degrades to absent
// and is counted in CoercionMisses). Cells past the last column are ignored.
// It returns false when every cell of the row is empty.
func (s *Schema) MapRow(row RawRow) (FlatRecord, bool) {
	if isEmptyRow(row) {
		return FlatRecord{}, false
	}

	rec := FlatRecord{
		schema: s,
		values: make([]Value, len(s.columns)),
	}

	for i, c := range s.columns {
		if i >= len(row) {
			break
		}
		text, ok := cellText(row[i])
		if !ok {
			continue
		}

		switch c.Kind {
		case KindInt:
			n, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil {
				rec.CoercionMisses++
				continue
			}
			rec.values[i] = Value{kind: valueInt, n: n}
		default:
			rec.values[i] = Value{kind: valueString, s: text}
		}
	}

	return rec, true
}

// MapRow zips row against the Default schema.
func MapRow(row RawRow) (FlatRecord, bool) {
	return Default.MapRow(row)
}

// cellText renders a decoded cell as text. It returns false for nil and for
// the empty string.
func cellText(cell any) (string, bool) {
	var s string
	switch v := cell.(type) {
	case nil:
		return "", false
	case string:
		s = v
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case bool:
		s = strconv.FormatBool(v)
	default:
		s = fmt.Sprint(v)
	}
	if s == "" {
		return "", false
	}
	return s, true
}

func isEmptyRow(row RawRow) bool {
	for _, cell := range row {
		if _, ok := cellText(cell); ok {
			return false
		}
	}
	return true
}
