package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kailas-cloud/solrdex/internal/domain"
)

// MatchAll is sent as q when the expression is empty.
const MatchAll = "*:*"

// Page holds optional pagination. Unset values are not sent.
type Page struct {
	start, rows       int
	hasStart, hasRows bool
}

// WithStart returns p with the offset of the first document set.
func (p Page) WithStart(n int) Page {
	p.start, p.hasStart = n, true
	return p
}

// WithRows returns p with the page size set.
func (p Page) WithRows(n int) Page {
	p.rows, p.hasRows = n, true
	return p
}

// Start returns the offset and whether it was supplied.
func (p Page) Start() (int, bool) { return p.start, p.hasStart }

// Rows returns the page size and whether it was supplied.
func (p Page) Rows() (int, bool) { return p.rows, p.hasRows }

// Validate rejects negative values.
func (p Page) Validate() error {
	if p.hasStart && p.start < 0 {
		return fmt.Errorf("%w: start must be >= 0, got %d", domain.ErrInvalidQuery, p.start)
	}
	if p.hasRows && p.rows < 0 {
		return fmt.Errorf("%w: rows must be >= 0, got %d", domain.ErrInvalidQuery, p.rows)
	}
	return nil
}

// Param is one request parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered parameter list.
type Params []Param

// Select builds the parameters of a select request in the order q, sort, start, rows.
func Select(expr Expression, s Sort, p Page) Params {
	q := expr.String()
	if q == "" {
		q = MatchAll
	}
	ps := Params{{Key: "q", Value: q}}
	if !s.IsEmpty() {
		ps = append(ps, Param{Key: "sort", Value: s.String()})
	}
	if n, ok := p.Start(); ok {
		ps = append(ps, Param{Key: "start", Value: strconv.Itoa(n)})
	}
	if n, ok := p.Rows(); ok {
		ps = append(ps, Param{Key: "rows", Value: strconv.Itoa(n)})
	}
	return ps
}

// Get returns the first value for key.
func (ps Params) Get(key string) (string, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// With returns ps with one more parameter appended.
func (ps Params) With(key, value string) Params {
	out := make(Params, len(ps), len(ps)+1)
	copy(out, ps)
	return append(out, Param{Key: key, Value: value})
}

// Encode renders ps as a URL query string, keeping order.
func (ps Params) Encode() string {
	var b strings.Builder
	for i, p := range ps {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
