package httpclient

import (
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned when an upstream API responds with a non-2xx
// status. It lets callers distinguish "the call completed with an error
// status" from transport failures.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

// NewStatusError reads and closes the response body (up to 1 MB) and wraps
// the status into a StatusError. Call only for non-2xx responses.
func NewStatusError(resp *http.Response, service string) *StatusError {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		body = nil
	}

	return &StatusError{
		Service:    service,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}
