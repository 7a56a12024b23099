package solrdex

import (
	"fmt"
	"reflect"

	"github.com/kailas-cloud/solrdex/internal/domain/schema"
	"github.com/kailas-cloud/solrdex/internal/xmlwire"
)

// ResultSet is one page of typed query results.
// len(Docs) never exceeds NumFound.
type ResultSet[T any] struct {
	NumFound int64 // total matches on the server
	Start    int64 // offset of Docs[0] within all matches
	Docs     []T
}

// ResultParser turns select response text into typed results.
// It needs no client and is safe for concurrent use.
type ResultParser[T any] struct {
	schema    *schema.Schema
	mapper    *schema.Mapper
	isPointer bool
}

// NewResultParser resolves T's schema. T must be a struct or a pointer to struct.
func NewResultParser[T any](opts ...IndexOption) (*ResultParser[T], error) {
	cfg := applyIndexOptions(opts)
	t := reflect.TypeFor[T]()
	s, err := schema.Resolve(t)
	if err != nil {
		return nil, fmt.Errorf("result parser: %w", err)
	}
	return &ResultParser[T]{
		schema:    s,
		mapper:    schema.NewMapper(s, cfg.strict),
		isPointer: t.Kind() == reflect.Pointer,
	}, nil
}

// Parse decodes raw and maps every doc in document order.
// The first record that fails to map aborts the parse.
func (p *ResultParser[T]) Parse(raw string) (ResultSet[T], error) {
	res, err := xmlwire.DecodeResponse(raw)
	if err != nil {
		return ResultSet[T]{}, fmt.Errorf("parse: %w", err)
	}

	out := ResultSet[T]{
		NumFound: res.NumFound,
		Start:    res.Start,
		Docs:     make([]T, 0, len(res.Records)),
	}
	for i, rec := range res.Records {
		v, err := p.mapper.Map(rec)
		if err != nil {
			return ResultSet[T]{}, fmt.Errorf("parse doc %d: %w", i, err)
		}
		if p.isPointer {
			v = v.Addr()
		}
		out.Docs = append(out.Docs, v.Interface().(T))
	}
	return out, nil
}
