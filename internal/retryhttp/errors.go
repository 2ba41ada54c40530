package retryhttp

import (
	"fmt"
	"net/http"
)

// retryableCodes are the status codes worth retrying.
var retryableCodes = map[int]bool{
	http.StatusTooManyRequests:     true, // 429
	http.StatusInternalServerError: true, // 500
	http.StatusBadGateway:          true, // 502
	http.StatusServiceUnavailable:  true, // 503
	http.StatusGatewayTimeout:      true, // 504
}

// StatusError is an upstream failure that produced an HTTP status code.
// Connection-level failures never produce one and are not retried.
type StatusError struct {
	StatusCode int
	Body       []byte
	// RetryAfter is the raw Retry-After header value, if the response
	// carried one.
	RetryAfter string
}

// Error renders the status and a body excerpt for logs and audit records.
func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 256 {
		body = body[:256]
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, body)
}

// Retryable reports whether the status code is worth another attempt.
func (e *StatusError) Retryable() bool {
	return retryableCodes[e.StatusCode]
}
