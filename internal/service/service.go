// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/vaccine-tracker/internal/errs"
	"github.com/deppfellow/vaccine-tracker/internal/repository"
	"github.com/pkg/errors"
)

const (
	entityPatient = "Patient"
	entityVaccine = "Vaccine"
	entityDose    = "Dose"
)

// translate turns a repository miss into the entity's 404. Every other
// error is returned untouched for the global error handler.
func translate(err error, entity string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NewEntityNotFoundError(entity)
	}
	return err
}
