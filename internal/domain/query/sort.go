package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/solrdex/internal/domain"
)

// Direction is a sort direction.
type Direction int

// Sort directions.
const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc" or "desc", case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "asc", "":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return Asc, fmt.Errorf("%w: unknown sort direction %q", domain.ErrInvalidQuery, s)
}

// Order is one sort key.
type Order struct {
	Field     string
	Direction Direction
}

func (o Order) String() string {
	return o.Field + " " + o.Direction.String()
}

// Sort is an ordered list of sort keys.
type Sort struct {
	orders []Order
}

// NewSort creates a sort from orders in priority order.
func NewSort(orders ...Order) Sort {
	return Sort{orders: slices.Clone(orders)}
}

// Then returns s with one more key appended.
func (s Sort) Then(field string, d Direction) Sort {
	return Sort{orders: append(slices.Clip(s.orders), Order{Field: field, Direction: d})}
}

// IsEmpty reports whether no key is set.
func (s Sort) IsEmpty() bool { return len(s.orders) == 0 }

func (s Sort) String() string {
	parts := make([]string, len(s.orders))
	for i, o := range s.orders {
		parts[i] = o.String()
	}
	return strings.Join(parts, ",")
}
