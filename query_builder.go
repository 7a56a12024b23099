package solrdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/solrdex/internal/domain"
	"github.com/kailas-cloud/solrdex/internal/domain/query"
)

// QueryBuilder is an immutable, fluent query. Every method returns a new
// builder, so a partially built query can be shared and extended independently.
// The first construction error is kept and reported by Run.
type QueryBuilder[T any] struct {
	idx  *Index[T]
	expr query.Expression
	sort query.Sort
	page query.Page
	err  error
}

// FieldStep is a query waiting for the value of one field.
type FieldStep[T any] struct {
	b     QueryBuilder[T]
	field string
}

// BetweenStep is a range clause waiting for its upper bound.
type BetweenStep[T any] struct {
	b     QueryBuilder[T]
	field string
	lower any
}

// RangeBuilder is a query whose last clause is a range.
// Inclusive and Exclusive toggle both of its bounds.
type RangeBuilder[T any] struct {
	QueryBuilder[T]
	ok bool // the range clause was added
}

// By names the field of the next clause.
func (b QueryBuilder[T]) By(field string) FieldStep[T] {
	return FieldStep[T]{b: b, field: field}
}

// Is completes an equality clause. Values are escaped unless wrapped in Raw.
func (s FieldStep[T]) Is(value any) QueryBuilder[T] {
	c, err := query.Equal(s.field, value)
	return s.b.with(c, err)
}

// Between starts an inclusive range clause. A nil bound is open.
func (s FieldStep[T]) Between(lower any) BetweenStep[T] {
	return BetweenStep[T]{b: s.b, field: s.field, lower: lower}
}

// And completes the range clause.
func (s BetweenStep[T]) And(upper any) RangeBuilder[T] {
	return s.b.ByRange(s.field, s.lower, upper)
}

// ByRange adds an inclusive range clause on field.
func (b QueryBuilder[T]) ByRange(field string, lower, upper any) RangeBuilder[T] {
	c, err := query.Between(field, lower, upper)
	return RangeBuilder[T]{QueryBuilder: b.with(c, err), ok: err == nil && b.err == nil}
}

// Inclusive includes both bounds of the range (the default).
func (r RangeBuilder[T]) Inclusive() RangeBuilder[T] {
	return r.toggle(false)
}

// Exclusive excludes both bounds of the range.
func (r RangeBuilder[T]) Exclusive() RangeBuilder[T] {
	return r.toggle(true)
}

func (r RangeBuilder[T]) toggle(exclusive bool) RangeBuilder[T] {
	if !r.ok {
		return r
	}
	c, _ := r.expr.Last()
	if exclusive {
		c = c.Exclusive()
	} else {
		c = c.Inclusive()
	}
	r.expr = r.expr.ReplaceLast(c)
	return r
}

// ByExample adds one equality clause per member of doc that is not its zero value,
// in member declaration order. Multi-valued members add one clause per element.
func (b QueryBuilder[T]) ByExample(doc T) QueryBuilder[T] {
	if b.idx == nil {
		return b.fail(errors.New("solrdex: query has no index"))
	}
	for _, v := range b.idx.parser.schema.Example(doc) {
		c, err := query.Equal(v.Name, v.Value)
		b = b.with(c, err)
	}
	return b
}

// RawQuery adds a query fragment sent verbatim, e.g. "id:1 OR id:2".
func (b QueryBuilder[T]) RawQuery(q string) QueryBuilder[T] {
	if q == "" {
		return b.fail(fmt.Errorf("%w: empty raw query", domain.ErrInvalidQuery))
	}
	return b.with(query.Raw(q), nil)
}

// OrderBy appends a sort key. The direction defaults to Asc.
func (b QueryBuilder[T]) OrderBy(field string, order ...Order) QueryBuilder[T] {
	if field == "" {
		return b.fail(fmt.Errorf("%w: sort field is required", domain.ErrInvalidQuery))
	}
	dir := Asc
	if len(order) > 0 {
		dir = order[0]
	}
	b.sort = b.sort.Then(field, dir)
	return b
}

// Start sets the offset of the first returned document.
func (b QueryBuilder[T]) Start(n int) QueryBuilder[T] {
	b.page = b.page.WithStart(n)
	return b
}

// Rows sets the maximum number of returned documents.
func (b QueryBuilder[T]) Rows(n int) QueryBuilder[T] {
	b.page = b.page.WithRows(n)
	return b
}

// Paginate sets both start and rows.
func (b QueryBuilder[T]) Paginate(start, rows int) QueryBuilder[T] {
	return b.Start(start).Rows(rows)
}

// String renders the q parameter. It is empty when no clause was added.
func (b QueryBuilder[T]) String() string {
	return b.expr.String()
}

// Sort renders the sort parameter.
func (b QueryBuilder[T]) Sort() string {
	return b.sort.String()
}

// Err returns the first construction error.
func (b QueryBuilder[T]) Err() error { return b.err }

// Params returns the select parameters in order q, sort, start, rows;
// start and rows only when set.
func (b QueryBuilder[T]) Params() ([]Param, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.page.Validate(); err != nil {
		return nil, err
	}
	return query.Select(b.expr, b.sort, b.page), nil
}

// Run sends the query and maps the response.
func (b QueryBuilder[T]) Run(ctx context.Context) (rs ResultSet[T], err error) {
	if b.idx == nil || b.idx.client == nil {
		return ResultSet[T]{}, errors.New("solrdex: query has no client")
	}
	c := b.idx.client
	start := time.Now()
	defer func() { c.obs.observe(opQuery, start, len(rs.Docs), err) }()

	params, err := b.Params()
	if err != nil {
		return ResultSet[T]{}, fmt.Errorf("query: %w", err)
	}
	raw, err := c.Select(ctx, params)
	if err != nil {
		return ResultSet[T]{}, fmt.Errorf("query: %w", err)
	}
	rs, err = b.idx.parser.Parse(raw)
	if err != nil {
		return ResultSet[T]{}, fmt.Errorf("query: %w", err)
	}
	return rs, nil
}

// Count returns the number of matches without fetching documents.
func (b QueryBuilder[T]) Count(ctx context.Context) (int64, error) {
	rs, err := b.Rows(0).Run(ctx)
	if err != nil {
		return 0, err
	}
	return rs.NumFound, nil
}

func (b QueryBuilder[T]) with(c query.Clause, err error) QueryBuilder[T] {
	if err != nil {
		return b.fail(err)
	}
	if b.err != nil {
		return b
	}
	b.expr = b.expr.And(c)
	return b
}

func (b QueryBuilder[T]) fail(err error) QueryBuilder[T] {
	if b.err == nil {
		b.err = err
	}
	return b
}
