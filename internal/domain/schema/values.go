package schema

import (
	"reflect"

	"github.com/kailas-cloud/solrdex/internal/domain/coerce"
)

// WireValue is one field value in wire form.
type WireValue struct {
	Name  string
	Value string
}

// Values renders every member of doc that has a wire form, in declaration order.
// Multi-valued members yield one entry per element.
func (s *Schema) Values(doc any) []WireValue {
	return s.collect(doc, false)
}

// Example renders the members of doc that differ from their zero value.
func (s *Schema) Example(doc any) []WireValue {
	return s.collect(doc, true)
}

// KeyValue renders the unique key of doc.
func (s *Schema) KeyValue(doc any) (string, bool) {
	d, ok := s.Key()
	if !ok {
		return "", false
	}
	v, ok := s.structValue(doc)
	if !ok {
		return "", false
	}
	return coerce.Format(v.Field(d.Index))
}

func (s *Schema) collect(doc any, skipZero bool) []WireValue {
	v, ok := s.structValue(doc)
	if !ok {
		return nil
	}
	var out []WireValue
	for _, d := range s.fields {
		fv := v.Field(d.Index)
		if skipZero && fv.IsZero() {
			continue
		}
		out = append(out, render(d.WireName, fv)...)
	}
	return out
}

func render(name string, v reflect.Value) []WireValue {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	multi := v.Kind() == reflect.Slice || v.Kind() == reflect.Array
	if multi && coerce.KindOf(v.Type()) == coerce.KindInvalid {
		out := make([]WireValue, 0, v.Len())
		for i := range v.Len() {
			if text, ok := coerce.Format(v.Index(i)); ok {
				out = append(out, WireValue{Name: name, Value: text})
			}
		}
		return out
	}
	if text, ok := coerce.Format(v); ok {
		return []WireValue{{Name: name, Value: text}}
	}
	return nil
}

func (s *Schema) structValue(doc any) (reflect.Value, bool) {
	v := reflect.ValueOf(doc)
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Type() != s.typ {
		return reflect.Value{}, false
	}
	return v, true
}
