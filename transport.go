package solrdex

import (
	"context"

	"github.com/kailas-cloud/solrdex/internal/domain/query"
)

// Request paths below the core URL.
const (
	PathSelect = "/select"
	PathUpdate = "/update"
	PathPing   = "/admin/ping"
)

// Param is one ordered request parameter.
type Param = query.Param

// Transport exchanges raw request and response text with the search server.
// Implementations must be safe for concurrent use.
type Transport interface {
	Get(ctx context.Context, path string, params []Param) (string, error)
	Post(ctx context.Context, path, body string) (string, error)
}
