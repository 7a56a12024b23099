package xmlwire

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func boolPtr(b bool) *bool { return &b }

func TestUpdateCommands(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"add_empty_doc", Add(Doc{})},
		{"add_no_docs", Add()},
		{"add_docs", Add(
			Doc{{Name: "id", Value: "SP2514N"}, {Name: "cat", Value: "electronics"}, {Name: "cat", Value: "hard drive"}},
			Doc{{Name: "id", Value: "6H500F0"}, {Name: "name", Value: `Maxtor <DiamondMax> "11" & co`}},
		)},
		{"delete_by_id", DeleteByID("SP2514N")},
		{"delete_by_ids", DeleteByID("a", "b&c")},
		{"delete_by_query", DeleteByQuery("id:[1 TO 5] name:<x>")},
		{"commit_default", Commit(CommitOptions{})},
		{"commit_flags", Commit(CommitOptions{WaitFlush: boolPtr(true), WaitSearcher: boolPtr(false)})},
		{"optimize_default", Optimize(CommitOptions{})},
		{"optimize_wait_searcher", Optimize(CommitOptions{WaitSearcher: boolPtr(true)})},
	}
	g := newGolden(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, []byte(tt.body))
		})
	}
}

func TestAdd_EmptyDocExact(t *testing.T) {
	if got, want := Add(Doc{}), "<add><doc /></add>"; got != want {
		t.Errorf("Add(empty) = %q, want %q", got, want)
	}
}

func TestDelete_Exact(t *testing.T) {
	if got, want := DeleteByID("123"), "<delete><id>123</id></delete>"; got != want {
		t.Errorf("DeleteByID = %q, want %q", got, want)
	}
	if got, want := DeleteByQuery("id:123"), "<delete><query>id:123</query></delete>"; got != want {
		t.Errorf("DeleteByQuery = %q, want %q", got, want)
	}
}
