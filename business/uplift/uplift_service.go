package uplift

import (
	"context"
	"errors"
	"fmt"

	"upliftService/domain"
	"upliftService/pkg/logger"
)

type UpliftService struct {
	models     *ModelContext
	normalizer Normalizer
	scorer     DualModelScorer
}

func NewUpliftService(models *ModelContext, cfg Config) (*UpliftService, error) {
	if models == nil {
		return nil, errors.New("model context is required")
	}
	normalizer, err := NewNormalizer(cfg)
	if err != nil {
		return nil, err
	}
	return &UpliftService{
		models:     models,
		normalizer: normalizer,
		scorer:     NewDualModelScorer(models.control, models.treated),
	}, nil
}

// Compute runs the full pipeline for one request: normalize, scale, score,
// correct degenerate cases and allocate the uplift across features.
func (s *UpliftService) Compute(ctx context.Context, in domain.FeatureInput) (domain.UpliftResult, error) {
	tid := TraceIDFromContext(ctx)

	rec, err := s.normalizer.Normalize(in)
	if err != nil {
		UpliftComputationsTotal.WithLabelValues("input_error").Inc()
		return domain.UpliftResult{}, err
	}
	logger.Debug("uplift_normalized",
		"trace_id", tid,
		"input_kind", in.Kind.String(),
		"policy", string(s.normalizer.Policy()),
		"record", rec[:],
	)

	scaled, err := s.models.scaler.Scale(rec)
	if err != nil {
		outcome := "scaling_error"
		if errors.Is(err, ErrInputValue) {
			outcome = "input_error"
		}
		UpliftComputationsTotal.WithLabelValues(outcome).Inc()
		return domain.UpliftResult{}, err
	}

	scores, err := s.scorer.Score(scaled)
	if err != nil {
		UpliftComputationsTotal.WithLabelValues("scoring_error").Inc()
		logger.Error("uplift_scoring_failed", "trace_id", tid, "error", err)
		return domain.UpliftResult{}, err
	}

	correction := CorrectScores(scores.Control.Probability, scores.Treated.Probability, scaled)
	if correction.Applied {
		UpliftCorrectionsTotal.WithLabelValues(correctionScore).Inc()
		logger.Warn("uplift_identical_scores",
			"trace_id", tid,
			"control", scores.Control.Probability,
			"treated", scores.Treated.Probability,
			"offset", correction.Offset,
		)
	}
	uplift := correction.Treated - scores.Control.Probability

	delta, synthetic, err := ImportanceDelta(s.models.controlImportance, s.models.treatedImportance)
	if err != nil {
		UpliftComputationsTotal.WithLabelValues("allocation_error").Inc()
		return domain.UpliftResult{}, err
	}
	if synthetic {
		UpliftCorrectionsTotal.WithLabelValues(correctionImportance).Inc()
		logger.Debug("uplift_identical_importances", "trace_id", tid, "delta", delta)
	}

	alloc, err := Allocate(scaled, delta, uplift)
	if err != nil {
		UpliftComputationsTotal.WithLabelValues("allocation_error").Inc()
		return domain.UpliftResult{}, fmt.Errorf("allocate uplift: %w", err)
	}
	if alloc.Synthetic {
		UpliftCorrectionsTotal.WithLabelValues(correctionAllocation).Inc()
		logger.Debug("uplift_weak_contributions", "trace_id", tid, "uplift", uplift)
	}

	UpliftComputationsTotal.WithLabelValues("ok").Inc()
	logger.Debug("uplift_computed",
		"trace_id", tid,
		"control", scores.Control.Probability,
		"treated", correction.Treated,
		"uplift", uplift,
		"scale_factor", alloc.ScaleFactor,
	)

	return Assemble(uplift, alloc.Contributions), nil
}

// Diagnostics describes the loaded models for the health and admin endpoints.
func (s *UpliftService) Diagnostics() domain.ModelDetails {
	m := s.models
	return domain.ModelDetails{
		ControlName:              m.control.Name(),
		ControlType:              m.control.Kind(),
		TreatedName:              m.treated.Name(),
		TreatedType:              m.treated.Kind(),
		AreSameObject:            m.SameModel(),
		FeatureImportancesDiffer: m.ImportancesDiffer(),
		ControlImportances:       m.ControlImportances(),
		TreatedImportances:       m.TreatedImportances(),
		NormalizationPolicy:      string(s.normalizer.Policy()),
	}
}
