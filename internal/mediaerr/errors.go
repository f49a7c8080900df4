package mediaerr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers used to classify failures across the pipeline. Wrap tags
// errors with one of these so callers can branch with errors.Is.
var (
	// ErrInsufficientSize marks a video too small to content-hash. Fatal for
	// the file, never for the batch.
	ErrInsufficientSize = errors.New("insufficient size")
	// ErrIO marks unreadable bytes. Retryable.
	ErrIO = errors.New("io error")
	// ErrNetwork marks a failed remote call. Retryable up to max attempts.
	ErrNetwork = errors.New("network error")
	// ErrProtocol marks a malformed remote response. Retryable.
	ErrProtocol = errors.New("protocol error")
	// ErrRateLimited marks a call rejected because the endpoint's minimum
	// interval has not elapsed. Callers back off; never a terminal file state.
	ErrRateLimited = errors.New("rate limited")
	// ErrInvalidResult marks a structurally empty or garbage remote answer.
	// Treated as "no match", not a crash.
	ErrInvalidResult = errors.New("invalid result")
	// ErrHashFailed marks content hashing that exhausted its attempts.
	ErrHashFailed = errors.New("hash failed")
	// ErrNotFound marks a lookup with no result.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error that includes component context while tagging it with
// the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retryable reports whether a failure is worth re-attempting with backoff.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrIO), errors.Is(err, ErrNetwork),
		errors.Is(err, ErrProtocol), errors.Is(err, ErrRateLimited):
		return true
	default:
		return false
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
