package service

import (
	"context"
	"time"

	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/rs/zerolog"
)

type DoseService struct {
	doses DoseRepository
	now   func() time.Time
}

func NewDoseService(doses DoseRepository) *DoseService {
	return &DoseService{doses: doses, now: time.Now}
}

// Create records a dose; dose_date defaults to now when not supplied.
func (s *DoseService) Create(ctx context.Context, payload *model.CreateDosePayload) (*model.Dose, error) {
	doseDate := s.now().UTC()
	if payload.DoseDate != nil {
		doseDate = *payload.DoseDate
	}

	dose, err := s.doses.Create(ctx, payload.Fields(), doseDate)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("dose_id", dose.ID).
		Int64("vaccine_id", dose.VaccineID).
		Msg("dose created")

	return dose, nil
}

func (s *DoseService) List(ctx context.Context) ([]model.Dose, error) {
	doses, err := s.doses.List(ctx)
	if err != nil {
		return nil, err
	}
	if doses == nil {
		doses = []model.Dose{}
	}
	return doses, nil
}

func (s *DoseService) GetByID(ctx context.Context, id int64) (*model.Dose, error) {
	dose, err := s.doses.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, entityDose)
	}
	return dose, nil
}

func (s *DoseService) Update(ctx context.Context, payload *model.UpdateDosePayload) (*model.Dose, error) {
	dose, err := s.doses.Update(ctx, payload.ID, payload.Fields())
	if err != nil {
		return nil, translate(err, entityDose)
	}
	return dose, nil
}

func (s *DoseService) Delete(ctx context.Context, id int64) (*model.DeleteResponse, error) {
	if err := s.doses.Delete(ctx, id); err != nil {
		return nil, translate(err, entityDose)
	}

	zerolog.Ctx(ctx).Info().Int64("dose_id", id).Msg("dose deleted")

	return &model.DeleteResponse{Message: entityDose + " deleted"}, nil
}
