package uplift

import (
	"errors"
	"fmt"

	"upliftService/domain"
)

var (
	ErrInputShape = errors.New("input shape error")
	ErrInputValue = errors.New("input value error")
	ErrScaling    = errors.New("scaling error")
	ErrScoring    = errors.New("scoring error")
	ErrAllocation = errors.New("allocation error")
)

// InputShapeError reports a payload that does not carry exactly 14 features.
type InputShapeError struct {
	Expected int
	Got      int
	// Missing is set when the count matched but a canonical slot had no value.
	Missing string
}

func (e *InputShapeError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("Feature shape mismatch, missing feature %q", e.Missing)
	}
	return fmt.Sprintf("Feature shape mismatch, expected: %d, got %d", e.Expected, e.Got)
}

func (e *InputShapeError) Is(target error) bool { return target == ErrInputShape }

// InputValueError reports a feature value the normalizer cannot accept.
type InputValueError struct {
	Feature string
	Value   float64
	Reason  string
}

func (e *InputValueError) Error() string {
	return fmt.Sprintf("invalid value %v for feature %s: %s", e.Value, e.Feature, e.Reason)
}

func (e *InputValueError) Is(target error) bool { return target == ErrInputValue }

type ScalingError struct {
	Feature string
	Reason  string
}

func (e *ScalingError) Error() string {
	return fmt.Sprintf("scaler parameters for %s: %s", e.Feature, e.Reason)
}

func (e *ScalingError) Is(target error) bool { return target == ErrScaling }

type ScoringError struct {
	Role domain.ModelRole
	Err  error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("Prediction error: %s model: %v", e.Role, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }

func (e *ScoringError) Is(target error) bool { return target == ErrScoring }
