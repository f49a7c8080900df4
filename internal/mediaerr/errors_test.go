package mediaerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrNetwork, "request", "resolve", "guess lookup failed", cause)

	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should match ErrNetwork")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should preserve the cause chain")
	}
	if !strings.Contains(err.Error(), "request: resolve: guess lookup failed") {
		t.Errorf("detail missing from message: %q", err.Error())
	}
}

func TestWrapNilMarkerDefaultsToIO(t *testing.T) {
	err := Wrap(nil, "hashing", "read", "", nil)
	if !errors.Is(err, ErrIO) {
		t.Error("nil marker should default to ErrIO")
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrProtocol, "", "", "", nil)
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Errorf("expected placeholder detail, got %q", err.Error())
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrIO, true},
		{ErrNetwork, true},
		{ErrProtocol, true},
		{ErrRateLimited, true},
		{ErrInsufficientSize, false},
		{ErrInvalidResult, false},
		{ErrNotFound, false},
		{fmt.Errorf("outer: %w", ErrNetwork), true},
		{errors.New("plain"), false},
	}
	for _, tc := range cases {
		if got := Retryable(tc.err); got != tc.want {
			t.Errorf("Retryable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
