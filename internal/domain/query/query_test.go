package query

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/solrdex/internal/domain"
)

func mustEqual(t *testing.T, field string, v any) Clause {
	t.Helper()
	c, err := Equal(field, v)
	if err != nil {
		t.Fatalf("Equal(%q, %v): %v", field, v, err)
	}
	return c
}

func mustBetween(t *testing.T, field string, lo, hi any) Clause {
	t.Helper()
	c, err := Between(field, lo, hi)
	if err != nil {
		t.Fatalf("Between(%q): %v", field, err)
	}
	return c
}

func TestClause_String(t *testing.T) {
	tests := []struct {
		name string
		c    Clause
		want string
	}{
		{"equality", mustEqual(t, "Id", 123456), "Id:123456"},
		{"range default inclusive", mustBetween(t, "id", 123, 456), "id:[123 TO 456]"},
		{"range exclusive", mustBetween(t, "id", 123, 456).Exclusive(), "id:{123 TO 456}"},
		{"range back to inclusive", mustBetween(t, "id", 123, 456).Exclusive().Inclusive(), "id:[123 TO 456]"},
		{"open lower", mustBetween(t, "price", nil, 10), "price:[* TO 10]"},
		{"open upper pointer", mustBetween(t, "price", 1.5, (*int)(nil)), "price:[1.5 TO *]"},
		{"escaped value", mustEqual(t, "name", "a b:c"), `name:a\ b\:c`},
		{"escaped field", mustEqual(t, "my-field", "x"), `my\-field:x`},
		{"verbatim value", mustEqual(t, "name", Verbatim("foo*")), "name:foo*"},
		{"empty string", mustEqual(t, "name", ""), `name:""`},
		{"bool", mustEqual(t, "inStock", true), "inStock:true"},
		{"time", mustEqual(t, "updated", time.Date(2008, 1, 2, 3, 4, 5, 0, time.UTC)), `updated:2008\-01\-02T03\:04\:05Z`},
		{"raw query", Raw("id:1 OR id:2"), "id:1 OR id:2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClause_Errors(t *testing.T) {
	if _, err := Equal("", 1); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("empty field: err = %v, want ErrInvalidQuery", err)
	}
	if _, err := Equal("id", nil); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("nil value: err = %v, want ErrInvalidQuery", err)
	}
	if _, err := Between("", 1, 2); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("range empty field: err = %v, want ErrInvalidQuery", err)
	}
}

func TestExpression_JoinsInOrder(t *testing.T) {
	e := NewExpression().
		And(mustBetween(t, "id", 123, 456)).
		And(mustBetween(t, "p", "a", "z"))
	if got, want := e.String(), "id:[123 TO 456] p:[a TO z]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestExpression_Immutable(t *testing.T) {
	base := NewExpression(mustEqual(t, "a", 1))
	left := base.And(mustEqual(t, "b", 2))
	right := base.And(mustEqual(t, "c", 3))

	if got := base.String(); got != "a:1" {
		t.Errorf("base = %q, want a:1", got)
	}
	if got := left.String(); got != "a:1 b:2" {
		t.Errorf("left = %q, want a:1 b:2", got)
	}
	if got := right.String(); got != "a:1 c:3" {
		t.Errorf("right = %q, want a:1 c:3", got)
	}

	swapped := left.ReplaceLast(mustEqual(t, "z", 9))
	if got := left.String(); got != "a:1 b:2" {
		t.Errorf("ReplaceLast modified receiver: %q", got)
	}
	if got := swapped.String(); got != "a:1 z:9" {
		t.Errorf("swapped = %q, want a:1 z:9", got)
	}
}

func TestExpression_Last(t *testing.T) {
	var e Expression
	if _, ok := e.Last(); ok {
		t.Error("Last on empty expression should report false")
	}
	if !e.IsEmpty() || e.String() != "" {
		t.Errorf("empty expression = %q", e.String())
	}
	e = e.ReplaceLast(mustEqual(t, "a", 1))
	c, ok := e.Last()
	if !ok || c.String() != "a:1" {
		t.Errorf("Last = %q, %v", c.String(), ok)
	}
}

func TestSort_String(t *testing.T) {
	tests := []struct {
		name string
		s    Sort
		want string
	}{
		{"single", NewSort(Order{Field: "id", Direction: Asc}), "id asc"},
		{"two", NewSort().Then("id", Asc).Then("name", Desc), "id asc,name desc"},
		{"empty", Sort{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("DESC"); err != nil || d != Desc {
		t.Errorf("ParseDirection(DESC) = %v, %v", d, err)
	}
	if d, err := ParseDirection(""); err != nil || d != Asc {
		t.Errorf("ParseDirection(\"\") = %v, %v", d, err)
	}
	if _, err := ParseDirection("up"); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("ParseDirection(up) err = %v, want ErrInvalidQuery", err)
	}
}

func TestSelect_Params(t *testing.T) {
	expr := NewExpression(mustEqual(t, "id", 1))
	sort := NewSort().Then("id", Asc)

	ps := Select(expr, sort, Page{}.WithStart(10).WithRows(20))
	want := Params{{"q", "id:1"}, {"sort", "id asc"}, {"start", "10"}, {"rows", "20"}}
	if len(ps) != len(want) {
		t.Fatalf("params = %v, want %v", ps, want)
	}
	for i := range want {
		if ps[i] != want[i] {
			t.Errorf("params[%d] = %v, want %v", i, ps[i], want[i])
		}
	}
}

func TestSelect_PaginationOnlyWhenSupplied(t *testing.T) {
	ps := Select(NewExpression(mustEqual(t, "id", 1)), Sort{}, Page{})
	if len(ps) != 1 {
		t.Fatalf("params = %v, want only q", ps)
	}
	for _, key := range []string{"sort", "start", "rows"} {
		if _, ok := ps.Get(key); ok {
			t.Errorf("%s should be absent", key)
		}
	}

	ps = Select(Expression{}, Sort{}, Page{}.WithStart(0))
	if q, _ := ps.Get("q"); q != MatchAll {
		t.Errorf("q = %q, want %q", q, MatchAll)
	}
	if v, ok := ps.Get("start"); !ok || v != "0" {
		t.Errorf("start = %q, %v, want explicit 0", v, ok)
	}
}

func TestPage_Validate(t *testing.T) {
	if err := (Page{}.WithRows(-1)).Validate(); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("rows -1: err = %v", err)
	}
	if err := (Page{}.WithStart(-5)).Validate(); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("start -5: err = %v", err)
	}
	if err := (Page{}.WithStart(0).WithRows(0)).Validate(); err != nil {
		t.Errorf("zero page: err = %v", err)
	}
}

func TestParams_Encode(t *testing.T) {
	ps := Params{{"q", "id:[1 TO 2]"}, {"sort", "id asc"}}.With("wt", "xml")
	want := "q=id%3A%5B1+TO+2%5D&sort=id+asc&wt=xml"
	if got := ps.Encode(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}
