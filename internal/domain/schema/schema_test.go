package schema

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kailas-cloud/solrdex/internal/domain"
)

type product struct {
	ID       string    `solr:"id,key"`
	Name     string    `solr:"name"`
	Price    float64   `solr:"price"`
	InStock  bool      `solr:"inStock"`
	Features []string  `solr:"features"`
	Updated  time.Time `solr:"updated"`
	Category string
	Ignored  string `solr:"-"`
	internal string
}

type withID struct {
	Id int `solr:""`
}

func TestResolve_Product(t *testing.T) {
	s, err := Resolve(reflect.TypeFor[product]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := s.Fields()
	if len(fields) != 7 {
		t.Fatalf("len(fields) = %d, want 7", len(fields))
	}
	if fields[0].WireName != "id" || !fields[0].Key || !fields[0].Explicit {
		t.Errorf("fields[0] = %+v, want explicit key id", fields[0])
	}
	if fields[6].WireName != "Category" || fields[6].Explicit {
		t.Errorf("fields[6] = %+v, want implicit Category", fields[6])
	}
	key, ok := s.Key()
	if !ok || key.Member != "ID" {
		t.Errorf("key = %+v, %v, want member ID", key, ok)
	}
	if s.Type() != reflect.TypeFor[product]() {
		t.Errorf("Type = %s, want product", s.Type())
	}
}

func TestResolve_PointerType(t *testing.T) {
	s, err := Resolve(reflect.TypeFor[*product]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Type().Kind() != reflect.Struct {
		t.Errorf("Type kind = %s, want struct", s.Type().Kind())
	}
}

func TestResolve_EmptyTagUsesMemberName(t *testing.T) {
	s, err := Resolve(reflect.TypeFor[withID]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := s.Lookup("Id")
	if !ok || !d.Explicit || d.WireName != "Id" {
		t.Errorf("Lookup(Id) = %+v, %v, want explicit Id", d, ok)
	}
}

func TestResolve_NotStruct(t *testing.T) {
	_, err := Resolve(reflect.TypeFor[int]())
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Fatalf("err = %v, want ErrInvalidSchema", err)
	}
}

type duplicateKey struct {
	A string `solr:"a,key"`
	B string `solr:"b,key"`
}

func TestResolve_DuplicateKey(t *testing.T) {
	_, err := Resolve(reflect.TypeFor[duplicateKey]())
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Fatalf("err = %v, want ErrInvalidSchema", err)
	}
}

type unknownOption struct {
	A string `solr:"a,indexed"`
}

func TestResolve_UnknownOption(t *testing.T) {
	_, err := Resolve(reflect.TypeFor[unknownOption]())
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Fatalf("err = %v, want ErrInvalidSchema", err)
	}
}

type unsupportedMember struct {
	Attrs map[string]string `solr:"attrs"`
}

type unsupportedElement struct {
	Items []struct{ X int } `solr:"items"`
}

func TestResolve_UnsupportedTypesFailFast(t *testing.T) {
	if _, err := Resolve(reflect.TypeFor[unsupportedMember]()); !errors.Is(err, domain.ErrInvalidSchema) {
		t.Errorf("map member: err = %v, want ErrInvalidSchema", err)
	}
	_, err := Resolve(reflect.TypeFor[unsupportedElement]())
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Errorf("struct elements: err = %v, want ErrInvalidSchema", err)
	}
	if !errors.Is(err, domain.ErrCollectionTypeNotSupported) {
		t.Errorf("struct elements: err = %v, want ErrCollectionTypeNotSupported", err)
	}
}

type shadowed struct {
	Name  string `solr:"title"`
	Title string
	Other string `solr:"title"`
}

func TestLookup_ExplicitBeforeMemberName(t *testing.T) {
	s, err := Resolve(reflect.TypeFor[shadowed]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := s.Lookup("title")
	if !ok || d.Member != "Name" {
		t.Errorf("Lookup(title) = %+v, want first explicit member Name", d)
	}
	d, ok = s.Lookup("Title")
	if !ok || d.Member != "Title" {
		t.Errorf("Lookup(Title) = %+v, want member-name fallback Title", d)
	}
	if _, ok := s.Lookup("TITLE"); ok {
		t.Error("member-name fallback must be case-sensitive")
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Error("Lookup(missing) should not match")
	}
}

func TestFields_ReturnsCopy(t *testing.T) {
	s, _ := Resolve(reflect.TypeFor[product]())
	f := s.Fields()
	f[0].WireName = "changed"
	if s.Fields()[0].WireName != "id" {
		t.Error("Fields must not expose internal state")
	}
}
