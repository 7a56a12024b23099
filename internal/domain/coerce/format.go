package coerce

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Format renders a scalar value as wire text, the inverse of Scalar.
// It reports false for nil pointers and interfaces, which have no wire form.
func Format(v reflect.Value) (string, bool) {
	if !v.IsValid() {
		return "", false
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return "", false
		}
	}

	switch x := v.Interface().(type) {
	case time.Time:
		return x.UTC().Format(TimeLayout), true
	case *time.Time:
		return x.UTC().Format(TimeLayout), true
	case apd.Decimal:
		return x.String(), true
	case *apd.Decimal:
		return x.String(), true
	case encoding.TextMarshaler:
		b, err := x.MarshalText()
		if err == nil {
			return string(b), true
		}
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		return Format(v.Elem())
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), true
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}
	return fmt.Sprint(v.Interface()), true
}
