package handler

import (
	"github.com/deppfellow/vaccine-tracker/internal/model"
	"github.com/deppfellow/vaccine-tracker/internal/server"
	"github.com/deppfellow/vaccine-tracker/internal/service"
	"github.com/labstack/echo/v4"
)

type VaccineHandler struct {
	Handler
	vaccines *service.VaccineService
}

func NewVaccineHandler(s *server.Server, vaccines *service.VaccineService) *VaccineHandler {
	return &VaccineHandler{
		Handler:  NewHandler(s),
		vaccines: vaccines,
	}
}

func (h *VaccineHandler) CreateVaccine(c echo.Context, payload *model.CreateVaccinePayload) (*model.Vaccine, error) {
	return h.vaccines.Create(c.Request().Context(), payload)
}

func (h *VaccineHandler) ListVaccines(c echo.Context, _ *model.ListPayload) ([]model.Vaccine, error) {
	return h.vaccines.List(c.Request().Context())
}

func (h *VaccineHandler) GetVaccine(c echo.Context, payload *model.GetByIDPayload) (*model.Vaccine, error) {
	return h.vaccines.GetByID(c.Request().Context(), payload.ID)
}

func (h *VaccineHandler) UpdateVaccine(c echo.Context, payload *model.UpdateVaccinePayload) (*model.Vaccine, error) {
	return h.vaccines.Update(c.Request().Context(), payload)
}

func (h *VaccineHandler) DeleteVaccine(c echo.Context, payload *model.DeletePayload) (*model.DeleteResponse, error) {
	return h.vaccines.Delete(c.Request().Context(), payload.ID)
}

func (h *VaccineHandler) GetVaccineWithDoses(c echo.Context, payload *model.GetByIDPayload) (*model.VaccineWithDoses, error) {
	return h.vaccines.GetWithDoses(c.Request().Context(), payload.ID)
}
