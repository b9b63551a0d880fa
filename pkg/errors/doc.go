// Package errors provides custom error types for the smtp-gateway-agent.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// # Error Types Overview
//
//	┌──────────────────────────┬────────┬─────────────────────────────────────┐
//	│ Error Type               │ HTTP   │ Description                         │
//	├──────────────────────────┼────────┼─────────────────────────────────────┤
//	│ ResourceNotFoundError    │ 404    │ Requested resource doesn't exist    │
//	│ TestInProgressError      │ 409    │ Connection test already running     │
//	│ ValidatorClientError     │ -      │ Non-2xx answer from the validator   │
//	│ InvalidCredentialsError  │ 401    │ Login gate rejected the credentials │
//	└──────────────────────────┴────────┴─────────────────────────────────────┘
//
// # ResourceNotFoundError
//
// Indicates a requested resource was not found in the store.
//
// Constructors:
//   - NewResourceNotFoundError(kind string) - Generic resource not found
//   - NewTestRunNotFoundError() - No run with the requested id
//
// # TestInProgressError
//
// Returned by the connection tester when a test is triggered while another
// one is still waiting for the validation service. The second trigger is
// rejected, never queued.
//
// Constructor:
//   - NewTestInProgressError()
//
// Usage:
//
//	if errors.IsTestInProgressError(err) {
//	    c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
//	}
//
// # ValidatorClientError
//
// Wraps HTTP 4xx/5xx answers from the validation service. The tester folds it
// into a failed run with a single synthetic diagnostic line; it never reaches
// the HTTP layer.
//
// Constructor:
//   - NewValidatorClientError(statusCode int, message string)
//
// # InvalidCredentialsError
//
// Returned by the login gate when the username or password does not match
// the configured secrets.
//
// # Type Checking Pattern
//
// All error types provide Is* helper functions that use errors.As
// for proper error chain unwrapping:
//
//	wrapped := fmt.Errorf("operation failed: %w", errors.NewTestInProgressError())
//	errors.IsTestInProgressError(wrapped) // returns true
package errors
