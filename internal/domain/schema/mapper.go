package schema

import (
	"reflect"

	"github.com/kailas-cloud/solrdex/internal/domain"
	"github.com/kailas-cloud/solrdex/internal/domain/coerce"
	"github.com/kailas-cloud/solrdex/internal/domain/record"
)

// Mapper populates document instances from raw records.
type Mapper struct {
	schema *Schema
	strict bool
}

// NewMapper creates a mapper for s. When strict is set, response fields
// without a matching member fail with ErrUnknownField instead of being dropped.
func NewMapper(s *Schema, strict bool) *Mapper {
	return &Mapper{schema: s, strict: strict}
}

// Map builds a new document from rec and returns it as an addressable struct value.
// The first field failure aborts the record; nothing is rolled back.
func (m *Mapper) Map(rec record.Record) (reflect.Value, error) {
	doc := reflect.New(m.schema.typ).Elem()
	for _, f := range rec.Fields {
		d, ok := m.schema.Lookup(f.Name)
		if !ok {
			if m.strict {
				return reflect.Value{}, &domain.FieldError{Field: f.Name, Err: domain.ErrUnknownField}
			}
			continue
		}
		v, err := coerce.Value(f, d.Type)
		if err != nil {
			return reflect.Value{}, &domain.FieldError{Field: f.Name, Err: err}
		}
		doc.Field(d.Index).Set(v)
	}
	return doc, nil
}
