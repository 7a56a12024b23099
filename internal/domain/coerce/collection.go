package coerce

import (
	"fmt"
	"reflect"

	"github.com/kailas-cloud/solrdex/internal/domain"
	"github.com/kailas-cloud/solrdex/internal/domain/record"
)

// Shape is the container form a member declares for multi-valued fields.
type Shape int

// Container shapes.
const (
	ShapeNone    Shape = iota
	ShapeList          // []T
	ShapeArray         // [N]T
	ShapeUntyped       // any or []any, elements typed by wire tag
)

var anySliceType = reflect.TypeFor[[]any]()

// ShapeOf classifies t as a container shape.
func ShapeOf(t reflect.Type) Shape {
	switch t.Kind() {
	case reflect.Slice:
		if isEmptyInterface(t.Elem()) {
			return ShapeUntyped
		}
		return ShapeList
	case reflect.Array:
		return ShapeArray
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return ShapeUntyped
		}
	}
	return ShapeNone
}

// Assemble builds a container of type t from the children of an arr field.
// Element failures are wrapped as collection errors that keep the cause.
func Assemble(children []record.Field, t reflect.Type) (reflect.Value, error) {
	switch ShapeOf(t) {
	case ShapeList:
		return assembleList(children, t)
	case ShapeArray:
		return assembleArray(children, t)
	case ShapeUntyped:
		return assembleUntyped(children, t)
	default:
		return reflect.Value{}, domain.NewCollectionTypeError(t, nil)
	}
}

func assembleList(children []record.Field, t reflect.Type) (reflect.Value, error) {
	out := reflect.MakeSlice(t, 0, len(children))
	for _, c := range children {
		v, err := element(c, t.Elem())
		if err != nil {
			return reflect.Value{}, domain.NewCollectionTypeError(t, err)
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

func assembleArray(children []record.Field, t reflect.Type) (reflect.Value, error) {
	if len(children) > t.Len() {
		return reflect.Value{}, domain.NewCollectionTypeError(t,
			fmt.Errorf("%d values exceed array length %d", len(children), t.Len()))
	}
	out := reflect.New(t).Elem()
	for i, c := range children {
		v, err := element(c, t.Elem())
		if err != nil {
			return reflect.Value{}, domain.NewCollectionTypeError(t, err)
		}
		out.Index(i).Set(v)
	}
	return out, nil
}

func assembleUntyped(children []record.Field, t reflect.Type) (reflect.Value, error) {
	st := t
	if t.Kind() == reflect.Interface {
		st = anySliceType
	}
	out := reflect.MakeSlice(st, 0, len(children))
	for _, c := range children {
		v, err := Tagged(c.Text, c.Tag)
		if err != nil {
			return reflect.Value{}, domain.NewCollectionTypeError(t, err)
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

func element(c record.Field, t reflect.Type) (reflect.Value, error) {
	if isEmptyInterface(t) {
		return Tagged(c.Text, c.Tag)
	}
	return Scalar(c.Text, t)
}

// Supported reports, ahead of any parse, whether t can receive wire values.
func Supported(t reflect.Type) error {
	if KindOf(t) != KindInvalid {
		return nil
	}
	switch ShapeOf(t) {
	case ShapeList, ShapeArray:
		if KindOf(t.Elem()) == KindInvalid {
			return domain.NewCollectionTypeError(t, fmt.Errorf("unsupported element type %s", t.Elem()))
		}
		return nil
	case ShapeUntyped:
		return nil
	}
	return fmt.Errorf("%w: unsupported member type %s", domain.ErrInvalidSchema, t)
}

func isEmptyInterface(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}
