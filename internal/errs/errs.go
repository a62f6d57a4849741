// Package errs defines the error taxonomy shared by the provider clients
// and the pipeline. Errors carry a category code so callers can react to
// the kind of failure without depending on provider-specific error types.
package errs

import (
	"errors"
	"fmt"
)

// Error category codes.
const (
	CodeUnknown       = "UNKNOWN"
	CodeConfig        = "CONFIG"
	CodeAuth          = "AUTH"
	CodeUnavailable   = "UNAVAILABLE"
	CodeEmptyResponse = "EMPTY_RESPONSE"
	CodeTargetInvalid = "TARGET_INVALID"
)

// Error is a category-tagged application error. The wrapped cause is
// reachable through errors.Unwrap/Is/As.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.message
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the category code of err, or CodeUnknown if err does not
// carry one anywhere in its chain.
func Code(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code()
	}
	return CodeUnknown
}

// NewConfigError reports invalid or missing configuration.
func NewConfigError(message string, cause error) error {
	return &Error{code: CodeConfig, message: message, err: cause}
}

// NewAuthError reports a rejected or missing provider credential.
func NewAuthError(message string, cause error) error {
	return &Error{code: CodeAuth, message: message, err: cause}
}

// NewUnavailableError reports a provider that could not be reached or
// answered with a transient failure (network, timeout, rate limit, 5xx).
func NewUnavailableError(message string, cause error) error {
	return &Error{code: CodeUnavailable, message: message, err: cause}
}

// NewEmptyResponseError reports a provider response with no usable text.
func NewEmptyResponseError(message string, cause error) error {
	return &Error{code: CodeEmptyResponse, message: message, err: cause}
}

// NewTargetInvalidError reports an unknown or unauthorized delivery
// destination.
func NewTargetInvalidError(message string, cause error) error {
	return &Error{code: CodeTargetInvalid, message: message, err: cause}
}
