package handler

import (
	"github.com/deppfellow/vaccine-tracker/internal/server"
	"github.com/deppfellow/vaccine-tracker/internal/service"
)

// Handlers groups every HTTP handler so the router receives one object.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Patient *PatientHandler
	Vaccine *VaccineHandler
	Dose    *DoseHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Patient: NewPatientHandler(s, services.Patient),
		Vaccine: NewVaccineHandler(s, services.Vaccine),
		Dose:    NewDoseHandler(s, services.Dose),
	}
}
