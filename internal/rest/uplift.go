package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"upliftService/business/uplift"
	"upliftService/domain"
	"upliftService/pkg/logger"

	"github.com/labstack/echo/v4"
)

type (
	UpliftHandler struct {
		upliftService UpliftService
	}

	UpliftService interface {
		Compute(ctx context.Context, in domain.FeatureInput) (domain.UpliftResult, error)
		Diagnostics() domain.ModelDetails
	}

	HealthResponse struct {
		Status       string        `json:"status"`
		ModelsLoaded bool          `json:"models_loaded"`
		ModelDetails HealthDetails `json:"model_details"`
	}

	HealthDetails struct {
		ControlType              string `json:"control_type"`
		TreatedType              string `json:"treated_type"`
		AreSameObject            bool   `json:"are_same_object"`
		FeatureImportancesDiffer bool   `json:"feature_importances_differ"`
	}
)

func NewUpliftHandler(svc UpliftService) *UpliftHandler {
	return &UpliftHandler{upliftService: svc}
}

// POST /uplift with a JSON array of 14 numbers or an object keyed by feature name.
func (h *UpliftHandler) ComputeUplift(c echo.Context) error {
	ctx := c.Request().Context()
	tid := uplift.TraceIDFromContext(ctx)

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
	}

	var in domain.FeatureInput
	if len(bytes.TrimSpace(body)) == 0 {
		in = domain.KeyedInput(nil)
	} else if err := json.Unmarshal(body, &in); err != nil {
		logger.Warn("uplift_bad_payload", "trace_id", tid, "error", err)
		if !errors.Is(err, domain.ErrUnsupportedPayload) {
			err = errors.Join(domain.ErrUnsupportedPayload, err)
		}
		return c.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
	}

	res, err := h.upliftService.Compute(ctx, in)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error("uplift_compute_failed", "trace_id", tid, "error", err)
		} else {
			logger.Info("uplift_rejected", "trace_id", tid, "error", err)
		}
		return c.JSON(status, ErrorBody{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, res)
}

// GET /health
func (h *UpliftHandler) Health(c echo.Context) error {
	d := h.upliftService.Diagnostics()
	return c.JSON(http.StatusOK, HealthResponse{
		Status:       "healthy",
		ModelsLoaded: true,
		ModelDetails: HealthDetails{
			ControlType:              d.ControlType,
			TreatedType:              d.TreatedType,
			AreSameObject:            d.AreSameObject,
			FeatureImportancesDiffer: d.FeatureImportancesDiffer,
		},
	})
}
