package errors

import (
	"errors"
	"fmt"
)

// ResourceNotFoundError indicates a resource was not found.
type ResourceNotFoundError struct {
	Kind string
}

func NewResourceNotFoundError(kind string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Kind: kind}
}

func NewTestRunNotFoundError() *ResourceNotFoundError {
	return NewResourceNotFoundError("test run")
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// TestInProgressError indicates a connection test is already running.
type TestInProgressError struct{}

func NewTestInProgressError() *TestInProgressError {
	return &TestInProgressError{}
}

func (e *TestInProgressError) Error() string {
	return "connection test already in progress"
}

func IsTestInProgressError(err error) bool {
	var e *TestInProgressError
	return errors.As(err, &e)
}

// ValidatorClientError wraps a non-2xx answer from the validation service.
type ValidatorClientError struct {
	StatusCode int
	Message    string
}

func NewValidatorClientError(statusCode int, message string) *ValidatorClientError {
	return &ValidatorClientError{StatusCode: statusCode, Message: message}
}

func (e *ValidatorClientError) Error() string {
	return fmt.Sprintf("validation service returned %d: %s", e.StatusCode, e.Message)
}

func IsValidatorClientError(err error) bool {
	var e *ValidatorClientError
	return errors.As(err, &e)
}

// InvalidCredentialsError indicates the login gate rejected the supplied credentials.
type InvalidCredentialsError struct{}

func NewInvalidCredentialsError() *InvalidCredentialsError {
	return &InvalidCredentialsError{}
}

func (e *InvalidCredentialsError) Error() string {
	return "invalid credentials"
}

func IsInvalidCredentialsError(err error) bool {
	var e *InvalidCredentialsError
	return errors.As(err, &e)
}
