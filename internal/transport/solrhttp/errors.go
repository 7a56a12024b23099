package solrhttp

import (
	"fmt"

	"github.com/kailas-cloud/solrdex/internal/domain"
)

// StatusError is returned for non-2xx responses. It matches domain.ErrTransport.
type StatusError struct {
	Code int
	Body string
}

func newStatusError(code int, body []byte) *StatusError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &StatusError{Code: code, Body: string(body)}
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", domain.ErrTransport, e.Code)
	}
	return fmt.Sprintf("%s: status %d: %s", domain.ErrTransport, e.Code, e.Body)
}

// Is matches domain.ErrTransport.
func (e *StatusError) Is(target error) bool { return target == domain.ErrTransport }
