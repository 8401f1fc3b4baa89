package repository

import (
	"context"
	"time"

	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const vaccineColumns = `id, vaccine_name, dose_date, dose_number, vaccine_type, patient_id`

type VaccineRepository struct {
	db DBTX
}

func NewVaccineRepository(db DBTX) *VaccineRepository {
	return &VaccineRepository{db: db}
}

func scanVaccine(row pgx.CollectableRow) (model.Vaccine, error) {
	var v model.Vaccine
	err := row.Scan(&v.ID, &v.VaccineName, &v.DoseDate, &v.DoseNumber, &v.VaccineType, &v.PatientID)
	return v, err
}

func (r *VaccineRepository) queryOne(ctx context.Context, stmt string, args ...any) (*model.Vaccine, error) {
	var v model.Vaccine
	err := r.db.QueryRow(ctx, stmt, args...).
		Scan(&v.ID, &v.VaccineName, &v.DoseDate, &v.DoseNumber, &v.VaccineType, &v.PatientID)
	if err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

func (r *VaccineRepository) queryMany(ctx context.Context, stmt string, args ...any) ([]model.Vaccine, error) {
	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanVaccine)
}

// Create inserts a vaccine. A missing patient fails with the
// vaccines_patient_id_fkey violation.
func (r *VaccineRepository) Create(ctx context.Context, fields model.VaccineFields, doseDate time.Time) (*model.Vaccine, error) {
	stmt := `
		INSERT INTO vaccines (vaccine_name, dose_date, dose_number, vaccine_type, patient_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + vaccineColumns

	v, err := r.queryOne(ctx, stmt, fields.VaccineName, doseDate, fields.DoseNumber, fields.VaccineType, fields.PatientID)
	if err != nil {
		return nil, errors.Wrap(err, "insert vaccine")
	}

	return v, nil
}

func (r *VaccineRepository) GetByID(ctx context.Context, id int64) (*model.Vaccine, error) {
	v, err := r.queryOne(ctx, `SELECT `+vaccineColumns+` FROM vaccines WHERE id = $1`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get vaccine %d", id)
	}

	return v, nil
}

func (r *VaccineRepository) List(ctx context.Context) ([]model.Vaccine, error) {
	vaccines, err := r.queryMany(ctx, `SELECT `+vaccineColumns+` FROM vaccines ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list vaccines")
	}

	return vaccines, nil
}

func (r *VaccineRepository) ListByPatientID(ctx context.Context, patientID int64) ([]model.Vaccine, error) {
	stmt := `SELECT ` + vaccineColumns + ` FROM vaccines WHERE patient_id = $1 ORDER BY id`

	vaccines, err := r.queryMany(ctx, stmt, patientID)
	if err != nil {
		return nil, errors.Wrapf(err, "list vaccines of patient %d", patientID)
	}

	return vaccines, nil
}

// Update overwrites the mutable columns; dose_date is left untouched.
func (r *VaccineRepository) Update(ctx context.Context, id int64, fields model.VaccineFields) (*model.Vaccine, error) {
	stmt := `
		UPDATE vaccines
		SET vaccine_name = $2, dose_number = $3, vaccine_type = $4, patient_id = $5
		WHERE id = $1
		RETURNING ` + vaccineColumns

	v, err := r.queryOne(ctx, stmt, id, fields.VaccineName, fields.DoseNumber, fields.VaccineType, fields.PatientID)
	if err != nil {
		return nil, errors.Wrapf(err, "update vaccine %d", id)
	}

	return v, nil
}

func (r *VaccineRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vaccines WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "delete vaccine %d", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(ErrNotFound, "delete vaccine %d", id)
	}

	return nil
}
