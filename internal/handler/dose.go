package handler

import (
	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/deppfellow/vaccine-tracker/internal/server"
	"github.com/deppfellow/vaccine-tracker/internal/service"
	"github.com/labstack/echo/v4"
)

type DoseHandler struct {
	Handler
	doses *service.DoseService
}

func NewDoseHandler(s *server.Server, doses *service.DoseService) *DoseHandler {
	return &DoseHandler{
		Handler: NewHandler(s),
		doses:   doses,
	}
}

func (h *DoseHandler) CreateDose(c echo.Context, payload *model.CreateDosePayload) (*model.Dose, error) {
	return h.doses.Create(c.Request().Context(), payload)
}

func (h *DoseHandler) ListDoses(c echo.Context, _ *model.ListPayload) ([]model.Dose, error) {
	return h.doses.List(c.Request().Context())
}

func (h *DoseHandler) GetDose(c echo.Context, payload *model.GetByIDPayload) (*model.Dose, error) {
	return h.doses.GetByID(c.Request().Context(), payload.ID)
}

func (h *DoseHandler) UpdateDose(c echo.Context, payload *model.UpdateDosePayload) (*model.Dose, error) {
	return h.doses.Update(c.Request().Context(), payload)
}

func (h *DoseHandler) DeleteDose(c echo.Context, payload *model.DeletePayload) (*model.DeleteResponse, error) {
	return h.doses.Delete(c.Request().Context(), payload.ID)
}
