package llm

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/openai/openai-go/v2"
)

// ModelError is an upstream LLM failure. Transient errors (rate limits,
// timeouts, upstream outages) may be retried with backoff; permanent errors
// (bad request, auth failure) must be surfaced to the caller.
type ModelError struct {
	StatusCode int
	Transient  bool
	Err        error
}

func (e *ModelError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("model error (%s, status %d): %v", kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("model error (%s): %v", kind, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a retryable model error
func IsTransient(err error) bool {
	var modelErr *ModelError
	return errors.As(err, &modelErr) && modelErr.Transient
}

// classify wraps an SDK error into a ModelError with a retry decision
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &ModelError{
			StatusCode: apiErr.StatusCode,
			Transient:  transientStatus(apiErr.StatusCode),
			Err:        err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &ModelError{Transient: true, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ModelError{Transient: true, Err: err}
	}

	return &ModelError{Err: err}
}

// transientStatus reports whether an upstream HTTP status is worth retrying
func transientStatus(code int) bool {
	if code == 408 || code == 429 {
		return true
	}
	return code >= 500
}
