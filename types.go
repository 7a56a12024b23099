package solrdex

import (
	"github.com/kailas-cloud/solrdex/internal/domain/query"
	"github.com/kailas-cloud/solrdex/internal/xmlwire"
)

// Order is a sort direction.
type Order = query.Direction

// Sort directions.
const (
	Asc  Order = query.Asc
	Desc Order = query.Desc
)

// SortOrder is one sort key of a query.
type SortOrder = query.Order

// Verbatim is a query value sent without escaping.
type Verbatim = query.Verbatim

// Raw marks value to be inserted into the query text as is,
// e.g. By("name").Is(Raw("lap*")).
func Raw(value string) Verbatim { return Verbatim(value) }

// FieldValue is one named wire value of an untyped document.
type FieldValue = xmlwire.Field

// Document is an untyped document: field values in send order.
// A name may repeat for multi-valued fields.
type Document = xmlwire.Doc

// CommitOption sets a flag of commit or optimize.
type CommitOption func(*xmlwire.CommitOptions)

// WaitFlush sets the waitFlush attribute.
func WaitFlush(wait bool) CommitOption {
	return func(o *xmlwire.CommitOptions) { o.WaitFlush = &wait }
}

// WaitSearcher sets the waitSearcher attribute.
func WaitSearcher(wait bool) CommitOption {
	return func(o *xmlwire.CommitOptions) { o.WaitSearcher = &wait }
}

func commitOptions(opts []CommitOption) xmlwire.CommitOptions {
	var o xmlwire.CommitOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
