package repository

import (
	"context"
	"time"

	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const doseColumns = `id, type_dose, dose_date, dose_number, application_type, vaccine_id`

type DoseRepository struct {
	db DBTX
}

func NewDoseRepository(db DBTX) *DoseRepository {
	return &DoseRepository{db: db}
}

func scanDose(row pgx.CollectableRow) (model.Dose, error) {
	var d model.Dose
	err := row.Scan(&d.ID, &d.TypeDose, &d.DoseDate, &d.DoseNumber, &d.ApplicationType, &d.VaccineID)
	return d, err
}

func (r *DoseRepository) queryOne(ctx context.Context, stmt string, args ...any) (*model.Dose, error) {
	var d model.Dose
	err := r.db.QueryRow(ctx, stmt, args...).
		Scan(&d.ID, &d.TypeDose, &d.DoseDate, &d.DoseNumber, &d.ApplicationType, &d.VaccineID)
	if err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (r *DoseRepository) queryMany(ctx context.Context, stmt string, args ...any) ([]model.Dose, error) {
	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanDose)
}

func (r *DoseRepository) Create(ctx context.Context, fields model.DoseFields, doseDate time.Time) (*model.Dose, error) {
	stmt := `
		INSERT INTO doses (type_dose, dose_date, dose_number, application_type, vaccine_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + doseColumns

	d, err := r.queryOne(ctx, stmt, fields.TypeDose, doseDate, fields.DoseNumber, fields.ApplicationType, fields.VaccineID)
	if err != nil {
		return nil, errors.Wrap(err, "insert dose")
	}

	return d, nil
}

func (r *DoseRepository) GetByID(ctx context.Context, id int64) (*model.Dose, error) {
	d, err := r.queryOne(ctx, `SELECT `+doseColumns+` FROM doses WHERE id = $1`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get dose %d", id)
	}

	return d, nil
}

func (r *DoseRepository) List(ctx context.Context) ([]model.Dose, error) {
	doses, err := r.queryMany(ctx, `SELECT `+doseColumns+` FROM doses ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list doses")
	}

	return doses, nil
}

func (r *DoseRepository) ListByVaccineID(ctx context.Context, vaccineID int64) ([]model.Dose, error) {
	stmt := `SELECT ` + doseColumns + ` FROM doses WHERE vaccine_id = $1 ORDER BY id`

	doses, err := r.queryMany(ctx, stmt, vaccineID)
	if err != nil {
		return nil, errors.Wrapf(err, "list doses of vaccine %d", vaccineID)
	}

	return doses, nil
}

func (r *DoseRepository) Update(ctx context.Context, id int64, fields model.DoseFields) (*model.Dose, error) {
	stmt := `
		UPDATE doses
		SET type_dose = $2, dose_number = $3, application_type = $4, vaccine_id = $5
		WHERE id = $1
		RETURNING ` + doseColumns

	d, err := r.queryOne(ctx, stmt, id, fields.TypeDose, fields.DoseNumber, fields.ApplicationType, fields.VaccineID)
	if err != nil {
		return nil, errors.Wrapf(err, "update dose %d", id)
	}

	return d, nil
}

func (r *DoseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM doses WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "delete dose %d", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(ErrNotFound, "delete dose %d", id)
	}

	return nil
}
