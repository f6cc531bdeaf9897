package resilience

import (
	"context"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
)

// TimeoutError reports an attempt that lost its race against the timer.
type TimeoutError struct {
	Label   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timeout after %dms", e.Label, e.Timeout.Milliseconds())
}

// RetriesExhaustedError wraps the last transient failure once every attempt
// has been used.
type RetriesExhaustedError struct {
	Label    string
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("%s: giving up after %d attempts: %v", e.Label, e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

var transientMarkers = []string{
	"rate limit",
	"timeout",
	"network",
	"econnreset",
	"econnrefused",
	"socket hang up",
	"fetch failed",
}

// IsRetryable reports whether err is a transient failure worth another
// attempt. Cancellation and exhausted retries are never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var exhausted *RetriesExhaustedError
	if errors.As(err, &exhausted) || errors.Is(err, context.Canceled) {
		return false
	}

	var timeout *TimeoutError
	if errors.As(err, &timeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
