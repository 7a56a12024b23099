// Package query holds the immutable query expression, sort and paging values
// and their wire serialization.
package query

import (
	"slices"
	"strings"
)

type clauseKind int

const (
	kindEqual clauseKind = iota
	kindRange
	kindRaw
)

// Clause is one predicate: an equality, a range, or a verbatim query fragment.
// Field and bound text are stored already escaped.
type Clause struct {
	kind      clauseKind
	field     string
	value     string
	lower     string
	upper     string
	exclusive bool
}

// Equal creates a field:value clause.
func Equal(name string, value any) (Clause, error) {
	f, err := field(name)
	if err != nil {
		return Clause{}, err
	}
	v, err := Term(value)
	if err != nil {
		return Clause{}, err
	}
	return Clause{kind: kindEqual, field: f, value: v}, nil
}

// Between creates an inclusive range clause. A nil bound is open.
func Between(name string, lower, upper any) (Clause, error) {
	f, err := field(name)
	if err != nil {
		return Clause{}, err
	}
	lo, err := bound(lower)
	if err != nil {
		return Clause{}, err
	}
	hi, err := bound(upper)
	if err != nil {
		return Clause{}, err
	}
	return Clause{kind: kindRange, field: f, lower: lo, upper: hi}, nil
}

// Raw wraps a complete query string that is sent as is.
func Raw(q string) Clause {
	return Clause{kind: kindRaw, value: q}
}

// Inclusive returns a copy whose range bounds are both inclusive.
func (c Clause) Inclusive() Clause {
	c.exclusive = false
	return c
}

// Exclusive returns a copy whose range bounds are both exclusive.
func (c Clause) Exclusive() Clause {
	c.exclusive = true
	return c
}

func (c Clause) String() string {
	switch c.kind {
	case kindRange:
		open, closing := "[", "]"
		if c.exclusive {
			open, closing = "{", "}"
		}
		return c.field + ":" + open + c.lower + " TO " + c.upper + closing
	case kindRaw:
		return c.value
	default:
		return c.field + ":" + c.value
	}
}

// Expression is an ordered conjunction of clauses.
// Methods never modify the receiver.
type Expression struct {
	clauses []Clause
}

// NewExpression creates an expression from clauses in order.
func NewExpression(clauses ...Clause) Expression {
	return Expression{clauses: slices.Clone(clauses)}
}

// And returns e with c appended.
func (e Expression) And(c Clause) Expression {
	return Expression{clauses: append(slices.Clip(e.clauses), c)}
}

// Last returns the most recently added clause.
func (e Expression) Last() (Clause, bool) {
	if len(e.clauses) == 0 {
		return Clause{}, false
	}
	return e.clauses[len(e.clauses)-1], true
}

// ReplaceLast returns e with its last clause swapped for c.
// On an empty expression it behaves like And.
func (e Expression) ReplaceLast(c Clause) Expression {
	if len(e.clauses) == 0 {
		return e.And(c)
	}
	out := slices.Clone(e.clauses)
	out[len(out)-1] = c
	return Expression{clauses: out}
}

// IsEmpty reports whether e has no clauses.
func (e Expression) IsEmpty() bool { return len(e.clauses) == 0 }

// String joins the clauses with single spaces, the parser's implicit AND.
func (e Expression) String() string {
	parts := make([]string, len(e.clauses))
	for i, c := range e.clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
