package router

import (
	"net/http"

	"github.com/deppfellow/vaccine-tracker/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerPatientRoutes(r *echo.Echo, h *handler.Handlers) {
	p := h.Patient

	patients := r.Group("/patients")
	patients.POST("", handler.Handle(p.Handler, p.CreatePatient, http.StatusCreated))
	patients.GET("", handler.Handle(p.Handler, p.ListPatients, http.StatusOK))
	patients.GET("/:id", handler.Handle(p.Handler, p.GetPatient, http.StatusOK))
	patients.PUT("", handler.Handle(p.Handler, p.UpdatePatient, http.StatusOK))
	patients.DELETE("", handler.Handle(p.Handler, p.DeletePatient, http.StatusOK))

	composite := handler.Handle(p.Handler, p.GetPatientWithVaccinesAndDoses, http.StatusOK)
	r.GET("/patientsAndVaccinesAndDoses/:id", composite)
	// Legacy spelling kept for existing clients.
	r.GET("/pacientsAndVaccinesAndDoses/:id", composite)
}

func registerVaccineRoutes(r *echo.Echo, h *handler.Handlers) {
	v := h.Vaccine

	vaccines := r.Group("/vaccines")
	vaccines.POST("", handler.Handle(v.Handler, v.CreateVaccine, http.StatusCreated))
	vaccines.GET("", handler.Handle(v.Handler, v.ListVaccines, http.StatusOK))
	vaccines.GET("/:id", handler.Handle(v.Handler, v.GetVaccine, http.StatusOK))
	vaccines.PUT("", handler.Handle(v.Handler, v.UpdateVaccine, http.StatusOK))
	vaccines.DELETE("", handler.Handle(v.Handler, v.DeleteVaccine, http.StatusOK))

	r.GET("/vaccinesAndDoses/:id", handler.Handle(v.Handler, v.GetVaccineWithDoses, http.StatusOK))
}

func registerDoseRoutes(r *echo.Echo, h *handler.Handlers) {
	d := h.Dose

	doses := r.Group("/doses")
	doses.POST("", handler.Handle(d.Handler, d.CreateDose, http.StatusCreated))
	doses.GET("", handler.Handle(d.Handler, d.ListDoses, http.StatusOK))
	doses.GET("/:id", handler.Handle(d.Handler, d.GetDose, http.StatusOK))
	doses.PUT("", handler.Handle(d.Handler, d.UpdateDose, http.StatusOK))
	doses.DELETE("", handler.Handle(d.Handler, d.DeleteDose, http.StatusOK))
}
