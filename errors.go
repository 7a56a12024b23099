package solrdex

import (
	"github.com/kailas-cloud/solrdex/internal/domain"
	"github.com/kailas-cloud/solrdex/internal/transport/solrhttp"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrTypeCoercion               = domain.ErrTypeCoercion
	ErrCollectionTypeNotSupported = domain.ErrCollectionTypeNotSupported
	ErrResponseFormat             = domain.ErrResponseFormat
	ErrInvalidSchema              = domain.ErrInvalidSchema
	ErrUnknownField               = domain.ErrUnknownField
	ErrInvalidQuery               = domain.ErrInvalidQuery
	ErrTransport                  = domain.ErrTransport
)

// Error values carrying detail. Use errors.As() to inspect.
type (
	CoercionError       = domain.CoercionError
	CollectionTypeError = domain.CollectionTypeError
	ResponseFormatError = domain.ResponseFormatError
	FieldError          = domain.FieldError
	StatusError         = solrhttp.StatusError
)
