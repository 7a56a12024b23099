// Package coerce converts wire text into typed Go values and back.
package coerce

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/kailas-cloud/solrdex/internal/domain"
	"github.com/kailas-cloud/solrdex/internal/domain/record"
)

// TimeLayout is the fixed wire timestamp format: UTC, literal Z, no offset.
const TimeLayout = "2006-01-02T15:04:05Z"

// Kind is the closed set of scalar kinds a member may declare.
type Kind int

// Scalar kinds.
const (
	KindInvalid Kind = iota
	KindString
	KindBool
	KindInt
	KindUint
	KindFloat
	KindDecimal
	KindTime
	KindNullableTime
	KindText    // encoding.TextUnmarshaler, the generic conversion
	KindDynamic // empty interface, converted by wire tag
)

var kindNames = [...]string{
	KindInvalid:      "invalid",
	KindString:       "string",
	KindBool:         "bool",
	KindInt:          "int",
	KindUint:         "uint",
	KindFloat:        "float",
	KindDecimal:      "decimal",
	KindTime:         "time",
	KindNullableTime: "nullable_time",
	KindText:         "text",
	KindDynamic:      "dynamic",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

var (
	timeType            = reflect.TypeFor[time.Time]()
	nullableTimeType    = reflect.TypeFor[*time.Time]()
	decimalType         = reflect.TypeFor[apd.Decimal]()
	decimalPtrType      = reflect.TypeFor[*apd.Decimal]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	anyType             = reflect.TypeFor[any]()
)

// tagTypes resolves the element type of untyped containers and interface members.
var tagTypes = map[record.Tag]reflect.Type{
	record.TagInt:    reflect.TypeFor[int](),
	record.TagLong:   reflect.TypeFor[int64](),
	record.TagFloat:  reflect.TypeFor[float32](),
	record.TagDouble: reflect.TypeFor[float64](),
	record.TagStr:    reflect.TypeFor[string](),
	record.TagBool:   reflect.TypeFor[bool](),
	record.TagDate:   timeType,
}

type converter func(text string, t reflect.Type) (reflect.Value, error)

var converters = map[Kind]converter{
	KindString:       convertString,
	KindBool:         convertBool,
	KindInt:          convertInt,
	KindUint:         convertUint,
	KindFloat:        convertFloat,
	KindDecimal:      convertDecimal,
	KindTime:         convertTime,
	KindNullableTime: convertNullableTime,
	KindText:         convertText,
	KindDynamic:      convertDynamic,
}

// KindOf classifies t. Special types take precedence over their underlying kind.
func KindOf(t reflect.Type) Kind {
	switch t {
	case timeType:
		return KindTime
	case nullableTimeType:
		return KindNullableTime
	case decimalType, decimalPtrType:
		return KindDecimal
	}
	if t.Kind() == reflect.Pointer && t.Implements(textUnmarshalerType) {
		return KindText
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface &&
		reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return KindText
	}

	switch t.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return KindDynamic
		}
	}
	return KindInvalid
}

// Scalar converts text into a value of type t.
func Scalar(text string, t reflect.Type) (reflect.Value, error) {
	conv, ok := converters[KindOf(t)]
	if !ok {
		return reflect.Value{}, domain.NewCoercionError(text, t, fmt.Errorf("unsupported kind %s", t.Kind()))
	}
	return conv(text, t)
}

// Tagged converts text using the type implied by its wire tag.
func Tagged(text string, tag record.Tag) (reflect.Value, error) {
	t, ok := tagTypes[tag]
	if !ok {
		return reflect.Value{}, domain.NewCoercionError(text, anyType, fmt.Errorf("unknown wire tag %q", tag))
	}
	return Scalar(text, t)
}

// Value converts a whole record field into a value assignable to t.
func Value(f record.Field, t reflect.Type) (reflect.Value, error) {
	if f.IsArray() {
		return Assemble(f.Children, t)
	}
	if KindOf(t) == KindDynamic {
		return Tagged(f.Text, f.Tag)
	}
	return Scalar(f.Text, t)
}

func convertString(text string, t reflect.Type) (reflect.Value, error) {
	return reflect.ValueOf(text).Convert(t), nil
}

// convertBool accepts true and false in any letter case, nothing else.
func convertBool(text string, t reflect.Type) (reflect.Value, error) {
	var b bool
	switch {
	case strings.EqualFold(text, "true"):
		b = true
	case strings.EqualFold(text, "false"):
	default:
		return reflect.Value{}, domain.NewCoercionError(text, t, errors.New("want true or false"))
	}
	return reflect.ValueOf(b).Convert(t), nil
}

func convertInt(text string, t reflect.Type) (reflect.Value, error) {
	n, err := strconv.ParseInt(text, 10, t.Bits())
	if err != nil {
		return reflect.Value{}, domain.NewCoercionError(text, t, err)
	}
	v := reflect.New(t).Elem()
	v.SetInt(n)
	return v, nil
}

func convertUint(text string, t reflect.Type) (reflect.Value, error) {
	n, err := strconv.ParseUint(text, 10, t.Bits())
	if err != nil {
		return reflect.Value{}, domain.NewCoercionError(text, t, err)
	}
	v := reflect.New(t).Elem()
	v.SetUint(n)
	return v, nil
}

func convertFloat(text string, t reflect.Type) (reflect.Value, error) {
	f, err := strconv.ParseFloat(text, t.Bits())
	if err != nil {
		return reflect.Value{}, domain.NewCoercionError(text, t, err)
	}
	v := reflect.New(t).Elem()
	v.SetFloat(f)
	return v, nil
}

func convertDecimal(text string, t reflect.Type) (reflect.Value, error) {
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return reflect.Value{}, domain.NewCoercionError(text, t, err)
	}
	if t == decimalPtrType {
		return reflect.ValueOf(d), nil
	}
	v := reflect.New(decimalType)
	v.Interface().(*apd.Decimal).Set(d)
	return v.Elem(), nil
}

func convertTime(text string, t reflect.Type) (reflect.Value, error) {
	ts, err := parseTime(text)
	if err != nil {
		return reflect.Value{}, domain.NewCoercionError(text, t, err)
	}
	return reflect.ValueOf(ts), nil
}

// parseTime parses text in TimeLayout exactly. time.Parse also takes
// fractional seconds the layout does not name, so the text must round-trip.
func parseTime(text string) (time.Time, error) {
	ts, err := time.ParseInLocation(TimeLayout, text, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	if ts.Format(TimeLayout) != text {
		return time.Time{}, fmt.Errorf("timestamp %q is not in layout %s", text, TimeLayout)
	}
	return ts, nil
}

// convertNullableTime maps empty text to a nil pointer.
func convertNullableTime(text string, t reflect.Type) (reflect.Value, error) {
	if text == "" {
		return reflect.Zero(t), nil
	}
	ts, err := parseTime(text)
	if err != nil {
		return reflect.Value{}, domain.NewCoercionError(text, t, err)
	}
	return reflect.ValueOf(&ts), nil
}

func convertText(text string, t reflect.Type) (reflect.Value, error) {
	elem := t
	if t.Kind() == reflect.Pointer {
		elem = t.Elem()
	}
	ptr := reflect.New(elem)
	u, ok := ptr.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return reflect.Value{}, domain.NewCoercionError(text, t, fmt.Errorf("%s does not implement encoding.TextUnmarshaler", ptr.Type()))
	}
	if err := u.UnmarshalText([]byte(text)); err != nil {
		return reflect.Value{}, domain.NewCoercionError(text, t, err)
	}
	if t.Kind() == reflect.Pointer {
		return ptr, nil
	}
	return ptr.Elem(), nil
}

// convertDynamic keeps the raw text when no wire tag is at hand.
func convertDynamic(text string, _ reflect.Type) (reflect.Value, error) {
	return reflect.ValueOf(text), nil
}
