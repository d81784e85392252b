package uplift

import (
	"math"

	"upliftService/domain"
)

// ScalerParams is a pre-fit standardization for the continuous features.
// The zero value has no entries and fails every Scale call.
type ScalerParams struct {
	params map[string]domain.ScaleParam
}

// NewScalerParams copies and validates the given parameters. Every continuous
// feature needs an entry with a finite mean and a finite, non-zero scale.
func NewScalerParams(params map[string]domain.ScaleParam) (ScalerParams, error) {
	own := make(map[string]domain.ScaleParam, domain.ContinuousCount)
	for i := 0; i < domain.ContinuousCount; i++ {
		key := domain.FeatureKeys[i]
		p, ok := params[key]
		if !ok {
			return ScalerParams{}, &ScalingError{Feature: key, Reason: "missing"}
		}
		if math.IsNaN(p.Mean) || math.IsInf(p.Mean, 0) {
			return ScalerParams{}, &ScalingError{Feature: key, Reason: "mean is not finite"}
		}
		if p.Scale == 0 || math.IsNaN(p.Scale) || math.IsInf(p.Scale, 0) {
			return ScalerParams{}, &ScalingError{Feature: key, Reason: "scale must be finite and non-zero"}
		}
		own[key] = p
	}
	return ScalerParams{params: own}, nil
}

// Scale returns a new record with each continuous feature standardized.
// visit and exposure pass through unchanged. A value that overflows when
// standardized is the caller's input, so it is reported as an InputValueError.
func (s ScalerParams) Scale(rec domain.FeatureRecord) (domain.FeatureRecord, error) {
	out := rec
	for i := 0; i < domain.ContinuousCount; i++ {
		key := domain.FeatureKeys[i]
		p, ok := s.params[key]
		if !ok {
			return domain.FeatureRecord{}, &ScalingError{Feature: key, Reason: "missing"}
		}
		v := (rec[i] - p.Mean) / p.Scale
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.FeatureRecord{}, &InputValueError{Feature: key, Value: rec[i], Reason: "scaled value is not finite"}
		}
		out[i] = v
	}
	return out, nil
}
