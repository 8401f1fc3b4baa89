package service

import (
	"github.com/deppfellow/vaccine-tracker/internal/repository"
	"github.com/deppfellow/vaccine-tracker/internal/server"
)

type Services struct {
	Patient *PatientService
	Vaccine *VaccineService
	Dose    *DoseService
}

// New wires the services on top of any repository implementation.
func New(patients PatientRepository, vaccines VaccineRepository, doses DoseRepository) *Services {
	vaccineService := NewVaccineService(vaccines, doses)

	return &Services{
		Patient: NewPatientService(patients, vaccineService),
		Vaccine: vaccineService,
		Dose:    NewDoseService(doses),
	}
}

// NewServices wires the services on top of the PostgreSQL repositories.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	s.Logger.Debug().Msg("initializing services")
	return New(repos.Patients, repos.Vaccines, repos.Doses)
}
