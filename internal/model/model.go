// Package model holds the entities persisted by the store and the request
// payloads bound by the HTTP layer.
package model

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// GetByIDPayload binds the record id from the route path.
type GetByIDPayload struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (p *GetByIDPayload) Validate() error {
	return validate.Struct(p)
}

// DeletePayload binds the record id from the query string or JSON body.
type DeletePayload struct {
	ID int64 `query:"id" json:"id" validate:"required,min=1"`
}

func (p *DeletePayload) Validate() error {
	return validate.Struct(p)
}

// ListPayload is bound by list routes, which take no input.
type ListPayload struct{}

func (p *ListPayload) Validate() error {
	return nil
}

// DeleteResponse confirms a delete.
type DeleteResponse struct {
	Message string `json:"message"`
}
