package service

import (
	"context"

	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/rs/zerolog"
)

type PatientService struct {
	patients PatientRepository
	vaccines *VaccineService
}

func NewPatientService(patients PatientRepository, vaccines *VaccineService) *PatientService {
	return &PatientService{patients: patients, vaccines: vaccines}
}

func (s *PatientService) Create(ctx context.Context, payload *model.CreatePatientPayload) (*model.Patient, error) {
	patient, err := s.patients.Create(ctx, payload.Fields())
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("patient_id", patient.ID).Msg("patient created")

	return patient, nil
}

func (s *PatientService) List(ctx context.Context) ([]model.Patient, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	if patients == nil {
		patients = []model.Patient{}
	}
	return patients, nil
}

func (s *PatientService) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, entityPatient)
	}
	return patient, nil
}

func (s *PatientService) Update(ctx context.Context, payload *model.UpdatePatientPayload) (*model.Patient, error) {
	patient, err := s.patients.Update(ctx, payload.ID, payload.Fields())
	if err != nil {
		return nil, translate(err, entityPatient)
	}
	return patient, nil
}

// Delete removes the patient together with its vaccines and their doses.
func (s *PatientService) Delete(ctx context.Context, id int64) (*model.DeleteResponse, error) {
	if err := s.patients.Delete(ctx, id); err != nil {
		return nil, translate(err, entityPatient)
	}

	zerolog.Ctx(ctx).Info().Int64("patient_id", id).Msg("patient deleted")

	return &model.DeleteResponse{Message: entityPatient + " deleted"}, nil
}

// GetWithVaccinesAndDoses assembles the patient, its vaccines and each
// vaccine's doses with one lookup per level. The reads are not atomic: a
// concurrent write may be reflected in some levels and not others.
func (s *PatientService) GetWithVaccinesAndDoses(ctx context.Context, id int64) (*model.PatientWithVaccines, error) {
	patient, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vaccines, err := s.vaccines.vaccines.ListByPatientID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &model.PatientWithVaccines{
		Patient:  *patient,
		Vaccines: make([]model.VaccineWithDoses, 0, len(vaccines)),
	}

	for _, vaccine := range vaccines {
		withDoses, err := s.vaccines.attachDoses(ctx, vaccine)
		if err != nil {
			return nil, err
		}
		result.Vaccines = append(result.Vaccines, *withDoses)
	}

	return result, nil
}
