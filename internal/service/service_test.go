package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/vaccine-tracker/internal/errs"
	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/deppfellow/vaccine-tracker/internal/repository/memstore"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

func newTestServices() *Services {
	store := memstore.New()
	services := New(store.Patients(), store.Vaccines(), store.Doses())
	services.Vaccine.now = func() time.Time { return fixedNow }
	services.Dose.now = func() time.Time { return fixedNow }
	return services
}

func requireHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
}

func TestPatientService_CRUD(t *testing.T) {
	s := newTestServices()
	ctx := context.Background()

	created, err := s.Patient.Create(ctx, &model.CreatePatientPayload{Name: "Ana", LastName: "Silva"})
	require.NoError(t, err)

	got, err := s.Patient.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := s.Patient.Update(ctx, &model.UpdatePatientPayload{ID: created.ID, Name: "Ana", LastName: "Souza"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err = s.Patient.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Souza", got.LastName)

	res, err := s.Patient.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Patient deleted", res.Message)

	_, err = s.Patient.GetByID(ctx, created.ID)
	requireHTTPError(t, err, http.StatusNotFound, "PATIENT_NOT_FOUND")
}

func TestPatientService_NotFound(t *testing.T) {
	s := newTestServices()
	ctx := context.Background()

	_, err := s.Patient.GetByID(ctx, 1)
	requireHTTPError(t, err, http.StatusNotFound, "PATIENT_NOT_FOUND")

	_, err = s.Patient.Update(ctx, &model.UpdatePatientPayload{ID: 1})
	requireHTTPError(t, err, http.StatusNotFound, "PATIENT_NOT_FOUND")

	_, err = s.Patient.Delete(ctx, 1)
	requireHTTPError(t, err, http.StatusNotFound, "PATIENT_NOT_FOUND")

	_, err = s.Patient.GetWithVaccinesAndDoses(ctx, 1)
	requireHTTPError(t, err, http.StatusNotFound, "PATIENT_NOT_FOUND")

	_, err = s.Vaccine.GetWithDoses(ctx, 1)
	requireHTTPError(t, err, http.StatusNotFound, "VACCINE_NOT_FOUND")

	_, err = s.Dose.Delete(ctx, 1)
	requireHTTPError(t, err, http.StatusNotFound, "DOSE_NOT_FOUND")
}

func TestVaccineService_CreateDefaultsDoseDate(t *testing.T) {
	s := newTestServices()
	ctx := context.Background()

	patient, err := s.Patient.Create(ctx, &model.CreatePatientPayload{Name: "Ana", LastName: "Silva"})
	require.NoError(t, err)

	vaccine, err := s.Vaccine.Create(ctx, &model.CreateVaccinePayload{
		VaccineName: "Covid", DoseNumber: 1, VaccineType: "first", PatientID: patient.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, vaccine.DoseDate)

	supplied := time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC)
	other, err := s.Vaccine.Create(ctx, &model.CreateVaccinePayload{
		VaccineName: "Flu", DoseNumber: 1, VaccineType: "yearly", PatientID: patient.ID, DoseDate: &supplied,
	})
	require.NoError(t, err)
	assert.Equal(t, supplied, other.DoseDate)
	assert.NotEqual(t, vaccine.ID, other.ID)
}

func TestVaccineService_UpdateKeepsDoseDate(t *testing.T) {
	s := newTestServices()
	ctx := context.Background()

	patient, err := s.Patient.Create(ctx, &model.CreatePatientPayload{Name: "Ana"})
	require.NoError(t, err)
	vaccine, err := s.Vaccine.Create(ctx, &model.CreateVaccinePayload{VaccineName: "Covid", PatientID: patient.ID})
	require.NoError(t, err)

	s.Vaccine.now = func() time.Time { return fixedNow.Add(48 * time.Hour) }

	_, err = s.Vaccine.Update(ctx, &model.UpdateVaccinePayload{
		ID: vaccine.ID, VaccineName: "Covid", DoseNumber: 2, VaccineType: "booster", PatientID: patient.ID,
	})
	require.NoError(t, err)

	got, err := s.Vaccine.GetByID(ctx, vaccine.ID)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, got.DoseDate)
	assert.Equal(t, int32(2), got.DoseNumber)
}

func TestVaccineService_CreateUnknownPatient(t *testing.T) {
	s := newTestServices()

	_, err := s.Vaccine.Create(context.Background(), &model.CreateVaccinePayload{VaccineName: "Covid", PatientID: 9})

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23503", pgErr.Code)
}

func TestPatientService_GetWithVaccinesAndDoses(t *testing.T) {
	s := newTestServices()
	ctx := context.Background()

	patient, err := s.Patient.Create(ctx, &model.CreatePatientPayload{Name: "Ana", LastName: "Silva"})
	require.NoError(t, err)

	composite, err := s.Patient.GetWithVaccinesAndDoses(ctx, patient.ID)
	require.NoError(t, err)
	assert.NotNil(t, composite.Vaccines)
	assert.Empty(t, composite.Vaccines)

	covid, err := s.Vaccine.Create(ctx, &model.CreateVaccinePayload{
		VaccineName: "Covid", DoseNumber: 1, VaccineType: "first", PatientID: patient.ID,
	})
	require.NoError(t, err)
	flu, err := s.Vaccine.Create(ctx, &model.CreateVaccinePayload{
		VaccineName: "Flu", DoseNumber: 1, VaccineType: "yearly", PatientID: patient.ID,
	})
	require.NoError(t, err)
	dose, err := s.Dose.Create(ctx, &model.CreateDosePayload{
		TypeDose: "first", DoseNumber: 1, ApplicationType: "intramuscular", VaccineID: covid.ID,
	})
	require.NoError(t, err)

	composite, err = s.Patient.GetWithVaccinesAndDoses(ctx, patient.ID)
	require.NoError(t, err)

	assert.Equal(t, *patient, composite.Patient)
	require.Len(t, composite.Vaccines, 2)
	assert.Equal(t, *covid, composite.Vaccines[0].Vaccine)
	assert.Equal(t, []model.Dose{*dose}, composite.Vaccines[0].Doses)
	assert.Equal(t, *flu, composite.Vaccines[1].Vaccine)
	assert.NotNil(t, composite.Vaccines[1].Doses)
	assert.Empty(t, composite.Vaccines[1].Doses)
}

func TestPatientService_DeleteCascadesToComposites(t *testing.T) {
	s := newTestServices()
	ctx := context.Background()

	patient, err := s.Patient.Create(ctx, &model.CreatePatientPayload{Name: "Ana", LastName: "Silva"})
	require.NoError(t, err)
	vaccine, err := s.Vaccine.Create(ctx, &model.CreateVaccinePayload{VaccineName: "Covid", PatientID: patient.ID})
	require.NoError(t, err)
	dose, err := s.Dose.Create(ctx, &model.CreateDosePayload{TypeDose: "first", VaccineID: vaccine.ID})
	require.NoError(t, err)

	_, err = s.Patient.Delete(ctx, patient.ID)
	require.NoError(t, err)

	_, err = s.Vaccine.GetWithDoses(ctx, vaccine.ID)
	requireHTTPError(t, err, http.StatusNotFound, "VACCINE_NOT_FOUND")

	_, err = s.Dose.GetByID(ctx, dose.ID)
	requireHTTPError(t, err, http.StatusNotFound, "DOSE_NOT_FOUND")

	doses, err := s.Dose.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, doses)
}

func TestDoseService_CRUD(t *testing.T) {
	s := newTestServices()
	ctx := context.Background()

	patient, err := s.Patient.Create(ctx, &model.CreatePatientPayload{Name: "Ana"})
	require.NoError(t, err)
	vaccine, err := s.Vaccine.Create(ctx, &model.CreateVaccinePayload{VaccineName: "Covid", PatientID: patient.ID})
	require.NoError(t, err)

	dose, err := s.Dose.Create(ctx, &model.CreateDosePayload{
		TypeDose: "first", DoseNumber: 1, ApplicationType: "oral", VaccineID: vaccine.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, dose.DoseDate)

	updated, err := s.Dose.Update(ctx, &model.UpdateDosePayload{
		ID: dose.ID, TypeDose: "second", DoseNumber: 2, ApplicationType: "oral", VaccineID: vaccine.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, dose.DoseDate, updated.DoseDate)

	doses, err := s.Dose.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Dose{*updated}, doses)

	res, err := s.Dose.Delete(ctx, dose.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dose deleted", res.Message)
}

type failingDoses struct {
	DoseRepository
}

func (failingDoses) ListByVaccineID(context.Context, int64) ([]model.Dose, error) {
	return nil, errors.New("connection refused")
}

func TestVaccineService_GetWithDoses_StoreFailure(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	patient, err := store.Patients().Create(ctx, model.PatientFields{Name: "Ana"})
	require.NoError(t, err)
	vaccine, err := store.Vaccines().Create(ctx, model.VaccineFields{PatientID: patient.ID}, fixedNow)
	require.NoError(t, err)

	services := New(store.Patients(), store.Vaccines(), failingDoses{store.Doses()})

	_, err = services.Vaccine.GetWithDoses(ctx, vaccine.ID)
	assert.EqualError(t, err, "connection refused")

	_, err = services.Patient.GetWithVaccinesAndDoses(ctx, patient.ID)
	assert.EqualError(t, err, "connection refused")
}
