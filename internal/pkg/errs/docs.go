// Package errs provides standardized error types for the station service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid or a transition guard fails
//   - ValueIsOutOfRangeError: For numeric values outside of their allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - PersistenceError: For failures reported by the storage collaborator
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The first four types form the validation class: the operation was rejected and
// nothing was written. PersistenceError is the recoverable storage class: callers may
// retry the operation.
package errs
