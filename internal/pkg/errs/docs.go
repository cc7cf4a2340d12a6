// Package errs provides standardized error types for the food-ordering service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the service's error taxonomy:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a missing order, user, courier or menu entry
//   - UnauthorizedError: no or invalid session
//   - ForbiddenError: wrong role, or not the owner/assignee of the resource
//   - PreconditionFailedError: a valid request that is illegal in the current state
//   - UpstreamFailureError: a failing weather, payment, geocoding or image provider
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Domain packages declare their own sentinels on top of these types
// (for example "payment required" as a PreconditionFailedError), so callers
// can match either the specific rule or its category.
package errs
