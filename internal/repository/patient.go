package repository

import (
	"context"

	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const patientColumns = `id, name, last_name`

type PatientRepository struct {
	db DBTX
}

func NewPatientRepository(db DBTX) *PatientRepository {
	return &PatientRepository{db: db}
}

func scanPatient(row pgx.CollectableRow) (model.Patient, error) {
	var p model.Patient
	err := row.Scan(&p.ID, &p.Name, &p.LastName)
	return p, err
}

func (r *PatientRepository) Create(ctx context.Context, fields model.PatientFields) (*model.Patient, error) {
	stmt := `
		INSERT INTO patients (name, last_name)
		VALUES ($1, $2)
		RETURNING ` + patientColumns

	var p model.Patient
	err := r.db.QueryRow(ctx, stmt, fields.Name, fields.LastName).Scan(&p.ID, &p.Name, &p.LastName)
	if err != nil {
		return nil, errors.Wrap(err, "insert patient")
	}

	return &p, nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	stmt := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`

	var p model.Patient
	err := r.db.QueryRow(ctx, stmt, id).Scan(&p.ID, &p.Name, &p.LastName)
	if err != nil {
		return nil, errors.Wrapf(notFound(err), "get patient %d", id)
	}

	return &p, nil
}

// List returns every patient ordered by id.
func (r *PatientRepository) List(ctx context.Context) ([]model.Patient, error) {
	stmt := `SELECT ` + patientColumns + ` FROM patients ORDER BY id`

	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, errors.Wrap(err, "list patients")
	}

	patients, err := pgx.CollectRows(rows, scanPatient)
	if err != nil {
		return nil, errors.Wrap(err, "scan patients")
	}

	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, id int64, fields model.PatientFields) (*model.Patient, error) {
	stmt := `
		UPDATE patients
		SET name = $2, last_name = $3
		WHERE id = $1
		RETURNING ` + patientColumns

	var p model.Patient
	err := r.db.QueryRow(ctx, stmt, id, fields.Name, fields.LastName).Scan(&p.ID, &p.Name, &p.LastName)
	if err != nil {
		return nil, errors.Wrapf(notFound(err), "update patient %d", id)
	}

	return &p, nil
}

// Delete removes the patient; its vaccines and their doses go with it
// through ON DELETE CASCADE.
func (r *PatientRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "delete patient %d", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(ErrNotFound, "delete patient %d", id)
	}

	return nil
}
