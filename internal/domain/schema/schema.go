// Package schema maps document struct members to wire field names.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/kailas-cloud/solrdex/internal/domain"
	"github.com/kailas-cloud/solrdex/internal/domain/coerce"
)

// TagKey is the struct tag that declares explicit wire names.
const TagKey = "solr"

// Descriptor binds one document member to its wire field.
type Descriptor struct {
	WireName string
	Member   string
	Index    int // struct field index
	Type     reflect.Type
	Explicit bool // wire name declared by tag
	Key      bool // unique key of the document
}

// Schema is the immutable member table of one document type.
// It is safe for concurrent use once returned by Resolve.
type Schema struct {
	typ      reflect.Type
	fields   []Descriptor
	byWire   map[string]int
	byMember map[string]int
	keyIdx   int
}

// Resolve reflects on a struct type (or pointer to struct) and builds its schema.
// Unsupported member types fail here rather than at parse time.
func Resolve(t reflect.Type) (*Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", domain.ErrInvalidSchema)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: type %s is not a struct", domain.ErrInvalidSchema, t)
	}

	s := &Schema{
		typ:      t,
		byWire:   make(map[string]int),
		byMember: make(map[string]int),
		keyIdx:   -1,
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		tag, tagged := f.Tag.Lookup(TagKey)
		if tag == "-" {
			continue
		}
		d, err := describe(i, f, tag, tagged)
		if err != nil {
			return nil, err
		}
		if err := s.add(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func describe(idx int, f reflect.StructField, tag string, tagged bool) (Descriptor, error) {
	d := Descriptor{
		WireName: f.Name,
		Member:   f.Name,
		Index:    idx,
		Type:     f.Type,
		Explicit: tagged,
	}
	if tagged {
		name, opts, _ := strings.Cut(tag, ",")
		if name != "" {
			d.WireName = name
		}
		for _, opt := range strings.Split(opts, ",") {
			switch opt {
			case "":
			case "key":
				d.Key = true
			default:
				return Descriptor{}, fmt.Errorf("%w: unknown option %q on member %s", domain.ErrInvalidSchema, opt, f.Name)
			}
		}
	}

	if err := coerce.Supported(f.Type); err != nil {
		if !errors.Is(err, domain.ErrInvalidSchema) {
			err = fmt.Errorf("%w: %w", domain.ErrInvalidSchema, err)
		}
		return Descriptor{}, fmt.Errorf("member %s: %w", f.Name, err)
	}
	return d, nil
}

func (s *Schema) add(d Descriptor) error {
	pos := len(s.fields)
	if d.Key {
		if s.keyIdx != -1 {
			return fmt.Errorf("%w: duplicate key on member %s", domain.ErrInvalidSchema, d.Member)
		}
		s.keyIdx = pos
	}
	// First declared owner of a wire name wins.
	if _, exists := s.byWire[d.WireName]; d.Explicit && !exists {
		s.byWire[d.WireName] = pos
	}
	s.byMember[d.Member] = pos
	s.fields = append(s.fields, d)
	return nil
}

// Type returns the document struct type.
func (s *Schema) Type() reflect.Type { return s.typ }

// Fields returns the descriptors in member declaration order.
func (s *Schema) Fields() []Descriptor { return slices.Clone(s.fields) }

// Lookup finds the member for a response field: explicit wire names first,
// then exact member names.
func (s *Schema) Lookup(wireName string) (Descriptor, bool) {
	if i, ok := s.byWire[wireName]; ok {
		return s.fields[i], true
	}
	if i, ok := s.byMember[wireName]; ok {
		return s.fields[i], true
	}
	return Descriptor{}, false
}

// Key returns the unique key member, if one is declared.
func (s *Schema) Key() (Descriptor, bool) {
	if s.keyIdx == -1 {
		return Descriptor{}, false
	}
	return s.fields[s.keyIdx], true
}
