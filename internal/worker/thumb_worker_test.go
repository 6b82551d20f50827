package worker

import (
	"MediaVault/internal/service"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestShouldRetrySkipsPermanentFailures(t *testing.T) {
	permanent := []error{
		service.ErrNotFound,
		service.ErrInvalidRequest,
		service.ErrNotImplemented,
		service.ErrUnsupportedFormat,
		service.ErrCorruptImage,
		service.ErrSourceMissing,
		service.ErrEmptySource,
		fmt.Errorf("%w: clip.mp4", service.ErrNotImplemented),
		fmt.Errorf("%w: u1/a.jpg", service.ErrCorruptImage),
	}
	for _, err := range permanent {
		if shouldRetry(err) {
			t.Errorf("shouldRetry(%v) = true, want false", err)
		}
	}

	transient := []error{
		errors.New("disk full"),
		fmt.Errorf("%w: write error", service.ErrStorageWriteFailed),
	}
	for _, err := range transient {
		if !shouldRetry(err) {
			t.Errorf("shouldRetry(%v) = false, want true", err)
		}
	}
}

func TestPickRetryDelay(t *testing.T) {
	delays := []time.Duration{10 * time.Second, 30 * time.Second, 2 * time.Minute}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 10 * time.Second},
		{1, 10 * time.Second},
		{2, 30 * time.Second},
		{3, 2 * time.Minute},
		// Attempts past the schedule reuse the last delay.
		{9, 2 * time.Minute},
	}
	for _, tc := range cases {
		if got := pickRetryDelay(tc.attempt, delays); got != tc.want {
			t.Errorf("pickRetryDelay(%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}

	if got := pickRetryDelay(1, nil); got != 0 {
		t.Errorf("pickRetryDelay with empty schedule = %v, want 0", got)
	}
}
