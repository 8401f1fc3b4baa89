// Package memstore is an in-memory implementation of the patient, vaccine
// and dose repositories.
//
// It mirrors the PostgreSQL schema: ids are assigned from per-table
// sequences, foreign keys are checked on write and deletes cascade.
// Foreign key violations surface as *pgconn.PgError so the rest of the
// stack handles them exactly as it does errors from the database.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/deppfellow/vaccine-tracker/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

type state struct {
	patients map[int64]model.Patient
	vaccines map[int64]model.Vaccine
	doses    map[int64]model.Dose

	patientSeq int64
	vaccineSeq int64
	doseSeq    int64
}

// Store holds the three tables behind a single lock.
type Store struct {
	mu sync.RWMutex
	state
}

func New() *Store {
	return &Store{state: state{
		patients: map[int64]model.Patient{},
		vaccines: map[int64]model.Vaccine{},
		doses:    map[int64]model.Dose{},
	}}
}

// Patients returns the patients table view.
func (s *Store) Patients() *Patients { return &Patients{s: s} }

// Vaccines returns the vaccines table view.
func (s *Store) Vaccines() *Vaccines { return &Vaccines{s: s} }

// Doses returns the doses table view.
func (s *Store) Doses() *Doses { return &Doses{s: s} }

func foreignKeyViolation(table, constraint, detail string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        "insert or update on table \"" + table + "\" violates foreign key constraint \"" + constraint + "\"",
		Detail:         detail,
		TableName:      table,
		ConstraintName: constraint,
	}
}

func notFound(entity string, id int64) error {
	return errors.Wrapf(repository.ErrNotFound, "%s %d", entity, id)
}

func sortedValues[T any](m map[int64]T, id func(T) int64) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return out
}

// deleteVaccineLocked removes a vaccine and its doses. Callers hold s.mu.
func (s *Store) deleteVaccineLocked(id int64) {
	for doseID, d := range s.doses {
		if d.VaccineID == id {
			delete(s.doses, doseID)
		}
	}
	delete(s.vaccines, id)
}

type Patients struct{ s *Store }

func (p *Patients) Create(_ context.Context, fields model.PatientFields) (*model.Patient, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	p.s.patientSeq++
	patient := model.Patient{ID: p.s.patientSeq, Name: fields.Name, LastName: fields.LastName}
	p.s.patients[patient.ID] = patient

	return &patient, nil
}

func (p *Patients) GetByID(_ context.Context, id int64) (*model.Patient, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	patient, ok := p.s.patients[id]
	if !ok {
		return nil, notFound("patient", id)
	}
	return &patient, nil
}

func (p *Patients) List(_ context.Context) ([]model.Patient, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	return sortedValues(p.s.patients, func(v model.Patient) int64 { return v.ID }), nil
}

func (p *Patients) Update(_ context.Context, id int64, fields model.PatientFields) (*model.Patient, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	patient, ok := p.s.patients[id]
	if !ok {
		return nil, notFound("patient", id)
	}

	patient.Name = fields.Name
	patient.LastName = fields.LastName
	p.s.patients[id] = patient

	return &patient, nil
}

func (p *Patients) Delete(_ context.Context, id int64) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.patients[id]; !ok {
		return notFound("patient", id)
	}

	for vaccineID, v := range p.s.vaccines {
		if v.PatientID == id {
			p.s.deleteVaccineLocked(vaccineID)
		}
	}
	delete(p.s.patients, id)

	return nil
}

type Vaccines struct{ s *Store }

func (v *Vaccines) checkPatientLocked(patientID int64) error {
	if _, ok := v.s.patients[patientID]; !ok {
		return foreignKeyViolation("vaccines", "vaccines_patient_id_fkey",
			"Key (patient_id)=("+itoa(patientID)+") is not present in table \"patients\".")
	}
	return nil
}

func (v *Vaccines) Create(_ context.Context, fields model.VaccineFields, doseDate time.Time) (*model.Vaccine, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	if err := v.checkPatientLocked(fields.PatientID); err != nil {
		return nil, errors.Wrap(err, "insert vaccine")
	}

	v.s.vaccineSeq++
	vaccine := model.Vaccine{
		ID:          v.s.vaccineSeq,
		VaccineName: fields.VaccineName,
		DoseDate:    doseDate,
		DoseNumber:  fields.DoseNumber,
		VaccineType: fields.VaccineType,
		PatientID:   fields.PatientID,
	}
	v.s.vaccines[vaccine.ID] = vaccine

	return &vaccine, nil
}

func (v *Vaccines) GetByID(_ context.Context, id int64) (*model.Vaccine, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	vaccine, ok := v.s.vaccines[id]
	if !ok {
		return nil, notFound("vaccine", id)
	}
	return &vaccine, nil
}

func (v *Vaccines) List(_ context.Context) ([]model.Vaccine, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	return sortedValues(v.s.vaccines, func(x model.Vaccine) int64 { return x.ID }), nil
}

func (v *Vaccines) ListByPatientID(_ context.Context, patientID int64) ([]model.Vaccine, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	out := []model.Vaccine{}
	for _, vaccine := range sortedValues(v.s.vaccines, func(x model.Vaccine) int64 { return x.ID }) {
		if vaccine.PatientID == patientID {
			out = append(out, vaccine)
		}
	}
	return out, nil
}

func (v *Vaccines) Update(_ context.Context, id int64, fields model.VaccineFields) (*model.Vaccine, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	vaccine, ok := v.s.vaccines[id]
	if !ok {
		return nil, notFound("vaccine", id)
	}
	if err := v.checkPatientLocked(fields.PatientID); err != nil {
		return nil, errors.Wrapf(err, "update vaccine %d", id)
	}

	vaccine.VaccineName = fields.VaccineName
	vaccine.DoseNumber = fields.DoseNumber
	vaccine.VaccineType = fields.VaccineType
	vaccine.PatientID = fields.PatientID
	v.s.vaccines[id] = vaccine

	return &vaccine, nil
}

func (v *Vaccines) Delete(_ context.Context, id int64) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	if _, ok := v.s.vaccines[id]; !ok {
		return notFound("vaccine", id)
	}
	v.s.deleteVaccineLocked(id)

	return nil
}

type Doses struct{ s *Store }

func (d *Doses) checkVaccineLocked(vaccineID int64) error {
	if _, ok := d.s.vaccines[vaccineID]; !ok {
		return foreignKeyViolation("doses", "doses_vaccine_id_fkey",
			"Key (vaccine_id)=("+itoa(vaccineID)+") is not present in table \"vaccines\".")
	}
	return nil
}

func (d *Doses) Create(_ context.Context, fields model.DoseFields, doseDate time.Time) (*model.Dose, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if err := d.checkVaccineLocked(fields.VaccineID); err != nil {
		return nil, errors.Wrap(err, "insert dose")
	}

	d.s.doseSeq++
	dose := model.Dose{
		ID:              d.s.doseSeq,
		TypeDose:        fields.TypeDose,
		DoseDate:        doseDate,
		DoseNumber:      fields.DoseNumber,
		ApplicationType: fields.ApplicationType,
		VaccineID:       fields.VaccineID,
	}
	d.s.doses[dose.ID] = dose

	return &dose, nil
}

func (d *Doses) GetByID(_ context.Context, id int64) (*model.Dose, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	dose, ok := d.s.doses[id]
	if !ok {
		return nil, notFound("dose", id)
	}
	return &dose, nil
}

func (d *Doses) List(_ context.Context) ([]model.Dose, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	return sortedValues(d.s.doses, func(x model.Dose) int64 { return x.ID }), nil
}

func (d *Doses) ListByVaccineID(_ context.Context, vaccineID int64) ([]model.Dose, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	out := []model.Dose{}
	for _, dose := range sortedValues(d.s.doses, func(x model.Dose) int64 { return x.ID }) {
		if dose.VaccineID == vaccineID {
			out = append(out, dose)
		}
	}
	return out, nil
}

func (d *Doses) Update(_ context.Context, id int64, fields model.DoseFields) (*model.Dose, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	dose, ok := d.s.doses[id]
	if !ok {
		return nil, notFound("dose", id)
	}
	if err := d.checkVaccineLocked(fields.VaccineID); err != nil {
		return nil, errors.Wrapf(err, "update dose %d", id)
	}

	dose.TypeDose = fields.TypeDose
	dose.DoseNumber = fields.DoseNumber
	dose.ApplicationType = fields.ApplicationType
	dose.VaccineID = fields.VaccineID
	d.s.doses[id] = dose

	return &dose, nil
}

func (d *Doses) Delete(_ context.Context, id int64) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if _, ok := d.s.doses[id]; !ok {
		return notFound("dose", id)
	}
	delete(d.s.doses, id)

	return nil
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
