package rest

import (
	"net/http"

	"upliftService/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	AdminHandler struct {
		upliftService UpliftService
		summary       domain.BundleSummary
	}

	ModelsResponse struct {
		Artifacts domain.BundleSummary `json:"artifacts"`
		Models    domain.ModelDetails  `json:"models"`
	}
)

func NewAdminHandler(svc UpliftService, summary domain.BundleSummary) *AdminHandler {
	return &AdminHandler{
		upliftService: svc,
		summary:       summary,
	}
}

// GET /api/v1/admin/models
func (h *AdminHandler) GetModels(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(ModelsResponse{
		Artifacts: h.summary,
		Models:    h.upliftService.Diagnostics(),
	}))
}
