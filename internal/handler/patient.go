package handler

import (
	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/deppfellow/vaccine-tracker/internal/server"
	"github.com/deppfellow/vaccine-tracker/internal/service"
	"github.com/labstack/echo/v4"
)

type PatientHandler struct {
	Handler
	patients *service.PatientService
}

func NewPatientHandler(s *server.Server, patients *service.PatientService) *PatientHandler {
	return &PatientHandler{
		Handler:  NewHandler(s),
		patients: patients,
	}
}

func (h *PatientHandler) CreatePatient(c echo.Context, payload *model.CreatePatientPayload) (*model.Patient, error) {
	return h.patients.Create(c.Request().Context(), payload)
}

func (h *PatientHandler) ListPatients(c echo.Context, _ *model.ListPayload) ([]model.Patient, error) {
	return h.patients.List(c.Request().Context())
}

func (h *PatientHandler) GetPatient(c echo.Context, payload *model.GetByIDPayload) (*model.Patient, error) {
	return h.patients.GetByID(c.Request().Context(), payload.ID)
}

func (h *PatientHandler) UpdatePatient(c echo.Context, payload *model.UpdatePatientPayload) (*model.Patient, error) {
	return h.patients.Update(c.Request().Context(), payload)
}

func (h *PatientHandler) DeletePatient(c echo.Context, payload *model.DeletePayload) (*model.DeleteResponse, error) {
	return h.patients.Delete(c.Request().Context(), payload.ID)
}

// GetPatientWithVaccinesAndDoses returns the patient with its vaccines and
// each vaccine's doses nested under it.
func (h *PatientHandler) GetPatientWithVaccinesAndDoses(c echo.Context, payload *model.GetByIDPayload) (*model.PatientWithVaccines, error) {
	return h.patients.GetWithVaccinesAndDoses(c.Request().Context(), payload.ID)
}
