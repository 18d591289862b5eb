// Package errs provides standardized error types for the application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the codebase.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// Handlers classify failures with errors.Is against the sentinels, which
// keeps error handling uniform across domain, application, and adapter layers.
package errs
