package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/deppfellow/vaccine-tracker/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIDocumentPath is the UI page served at /docs. It loads
// static/openapi.json from the /static route.
const OpenAPIDocumentPath = "static/openapi.html"

// OpenAPIHandler serves the OpenAPI UI for trying the API.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the docs page with caching disabled.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile(OpenAPIDocumentPath)

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
