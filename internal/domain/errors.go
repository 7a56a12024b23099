package domain

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrTypeCoercion signals a wire value that cannot be converted to the declared type.
	ErrTypeCoercion = errors.New("type coercion failed")
	// ErrCollectionTypeNotSupported signals an unsupported container shape
	// or a failed element conversion inside a container.
	ErrCollectionTypeNotSupported = errors.New("collection type not supported")
	// ErrResponseFormat signals a response envelope without the expected nodes or attributes.
	ErrResponseFormat = errors.New("malformed response")
	// ErrInvalidSchema signals a document type that cannot be mapped.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrUnknownField signals a response field with no matching member (strict mode only).
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidQuery signals a query that cannot be serialized.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrTransport signals a failed exchange with the search server.
	ErrTransport = errors.New("transport error")
)

// CoercionError describes a scalar conversion failure.
type CoercionError struct {
	Text string
	Type reflect.Type
	Err  error
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("%s: cannot convert %q to %s", ErrTypeCoercion.Error(), e.Text, e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CoercionError) Unwrap() error { return e.Err }

// Is matches ErrTypeCoercion.
func (e *CoercionError) Is(target error) bool { return target == ErrTypeCoercion }

// NewCoercionError creates a coercion error for text that failed to convert to t.
func NewCoercionError(text string, t reflect.Type, cause error) error {
	return &CoercionError{Text: text, Type: t, Err: cause}
}

// CollectionTypeError wraps ErrCollectionTypeNotSupported with the declared type
// and, when element conversion failed, the underlying cause.
type CollectionTypeError struct {
	Type reflect.Type
	Err  error
}

func (e *CollectionTypeError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrCollectionTypeNotSupported.Error(), e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CollectionTypeError) Unwrap() error { return e.Err }

// Is matches ErrCollectionTypeNotSupported.
func (e *CollectionTypeError) Is(target error) bool { return target == ErrCollectionTypeNotSupported }

// NewCollectionTypeError creates a collection error for t with an optional cause.
func NewCollectionTypeError(t reflect.Type, cause error) error {
	return &CollectionTypeError{Type: t, Err: cause}
}

// ResponseFormatError wraps ErrResponseFormat with the structural problem found.
type ResponseFormatError struct {
	Reason string
	Err    error
}

func (e *ResponseFormatError) Error() string {
	msg := ErrResponseFormat.Error() + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }

// Is matches ErrResponseFormat.
func (e *ResponseFormatError) Is(target error) bool { return target == ErrResponseFormat }

// NewResponseFormatError creates a response format error.
func NewResponseFormatError(reason string, cause error) error {
	return &ResponseFormatError{Reason: reason, Err: cause}
}

// FieldError attaches the wire field name to a mapping failure.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("field %q: %v", e.Field, e.Err) }
func (e *FieldError) Unwrap() error { return e.Err }
