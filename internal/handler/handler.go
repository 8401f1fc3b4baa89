// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It binds and validates requests using the validation package,
// calls the appropriate service and writes the JSON response.
package handler
