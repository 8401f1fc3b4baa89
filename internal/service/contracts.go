package service

import (
	"context"
	"time"

	"github.com/deppfellow/vaccine-tracker/internal/model"
)

// PatientRepository is the store the patient service reads and writes.
// Missing rows are reported as repository.ErrNotFound.
type PatientRepository interface {
	Create(ctx context.Context, fields model.PatientFields) (*model.Patient, error)
	GetByID(ctx context.Context, id int64) (*model.Patient, error)
	List(ctx context.Context) ([]model.Patient, error)
	Update(ctx context.Context, id int64, fields model.PatientFields) (*model.Patient, error)
	Delete(ctx context.Context, id int64) error
}

type VaccineRepository interface {
	Create(ctx context.Context, fields model.VaccineFields, doseDate time.Time) (*model.Vaccine, error)
	GetByID(ctx context.Context, id int64) (*model.Vaccine, error)
	List(ctx context.Context) ([]model.Vaccine, error)
	ListByPatientID(ctx context.Context, patientID int64) ([]model.Vaccine, error)
	Update(ctx context.Context, id int64, fields model.VaccineFields) (*model.Vaccine, error)
	Delete(ctx context.Context, id int64) error
}

type DoseRepository interface {
	Create(ctx context.Context, fields model.DoseFields, doseDate time.Time) (*model.Dose, error)
	GetByID(ctx context.Context, id int64) (*model.Dose, error)
	List(ctx context.Context) ([]model.Dose, error)
	ListByVaccineID(ctx context.Context, vaccineID int64) ([]model.Dose, error)
	Update(ctx context.Context, id int64, fields model.DoseFields) (*model.Dose, error)
	Delete(ctx context.Context, id int64) error
}
