// Package errs defines the error shape every API response failure uses.
//
// Its purpose is to create specific error structures
// (e.g. FieldErrors for payloads or HTTPError for API responses)
// so clients receive meaningful, actionable, and consistent
// error messages.
package errs
