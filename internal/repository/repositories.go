package repository

import (
	"github.com/deppfellow/vaccine-tracker/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Patients *PatientRepository
	Vaccines *VaccineRepository
	Doses    *DoseRepository
}

// NewRepositories builds every repository on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return NewRepositoriesWithDB(s.DB.Pool)
}

// NewRepositoriesWithDB builds every repository on top of db.
func NewRepositoriesWithDB(db DBTX) *Repositories {
	return &Repositories{
		Patients: NewPatientRepository(db),
		Vaccines: NewVaccineRepository(db),
		Doses:    NewDoseRepository(db),
	}
}
