package service

import (
	"context"
	"time"

	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/rs/zerolog"
)

type VaccineService struct {
	vaccines VaccineRepository
	doses    DoseRepository
	now      func() time.Time
}

func NewVaccineService(vaccines VaccineRepository, doses DoseRepository) *VaccineService {
	return &VaccineService{vaccines: vaccines, doses: doses, now: time.Now}
}

// Create records a vaccine; dose_date defaults to now when not supplied.
func (s *VaccineService) Create(ctx context.Context, payload *model.CreateVaccinePayload) (*model.Vaccine, error) {
	doseDate := s.now().UTC()
	if payload.DoseDate != nil {
		doseDate = *payload.DoseDate
	}

	vaccine, err := s.vaccines.Create(ctx, payload.Fields(), doseDate)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("vaccine_id", vaccine.ID).
		Int64("patient_id", vaccine.PatientID).
		Msg("vaccine created")

	return vaccine, nil
}

func (s *VaccineService) List(ctx context.Context) ([]model.Vaccine, error) {
	vaccines, err := s.vaccines.List(ctx)
	if err != nil {
		return nil, err
	}
	if vaccines == nil {
		vaccines = []model.Vaccine{}
	}
	return vaccines, nil
}

func (s *VaccineService) GetByID(ctx context.Context, id int64) (*model.Vaccine, error) {
	vaccine, err := s.vaccines.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, entityVaccine)
	}
	return vaccine, nil
}

func (s *VaccineService) Update(ctx context.Context, payload *model.UpdateVaccinePayload) (*model.Vaccine, error) {
	vaccine, err := s.vaccines.Update(ctx, payload.ID, payload.Fields())
	if err != nil {
		return nil, translate(err, entityVaccine)
	}
	return vaccine, nil
}

// Delete removes the vaccine together with its doses.
func (s *VaccineService) Delete(ctx context.Context, id int64) (*model.DeleteResponse, error) {
	if err := s.vaccines.Delete(ctx, id); err != nil {
		return nil, translate(err, entityVaccine)
	}

	zerolog.Ctx(ctx).Info().Int64("vaccine_id", id).Msg("vaccine deleted")

	return &model.DeleteResponse{Message: entityVaccine + " deleted"}, nil
}

func (s *VaccineService) GetWithDoses(ctx context.Context, id int64) (*model.VaccineWithDoses, error) {
	vaccine, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.attachDoses(ctx, *vaccine)
}

func (s *VaccineService) attachDoses(ctx context.Context, vaccine model.Vaccine) (*model.VaccineWithDoses, error) {
	doses, err := s.doses.ListByVaccineID(ctx, vaccine.ID)
	if err != nil {
		return nil, err
	}
	if doses == nil {
		doses = []model.Dose{}
	}

	return &model.VaccineWithDoses{Vaccine: vaccine, Doses: doses}, nil
}
