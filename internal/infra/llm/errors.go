package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError captures a non-2xx upstream response with status-aware context.
// Callers branch on the status code via errors.As instead of sniffing error
// message text.
type StatusError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm: unexpected status %d from %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

// HTTPStatusCode returns the upstream HTTP status.
func (e *StatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// IsRateLimit reports whether err (anywhere in its chain) is an upstream
// 429 response.
func IsRateLimit(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests
}
