package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dailymentor/dailymentor/internal/errs"
)

func TestCode(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying failure")

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "auth", err: errs.NewAuthError("bad key", cause), expected: errs.CodeAuth},
		{name: "unavailable", err: errs.NewUnavailableError("timeout", cause), expected: errs.CodeUnavailable},
		{name: "empty response", err: errs.NewEmptyResponseError("blank", nil), expected: errs.CodeEmptyResponse},
		{name: "target invalid", err: errs.NewTargetInvalidError("chat not found", nil), expected: errs.CodeTargetInvalid},
		{name: "config", err: errs.NewConfigError("missing token", nil), expected: errs.CodeConfig},
		{name: "plain error", err: cause, expected: errs.CodeUnknown},
		{name: "nil cause preserved in chain", err: fmt.Errorf("wrapped: %w", errs.NewAuthError("bad key", nil)), expected: errs.CodeAuth},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := errs.Code(tc.err); got != tc.expected {
				t.Errorf("expected code %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := errs.NewUnavailableError("failed to reach provider", cause)

	if err.Error() != "failed to reach provider: connection refused" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the wrapped cause")
	}
}
