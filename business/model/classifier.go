package model

import (
	"math"

	"upliftService/domain"
)

// Classifier scores a canonical, scaled 14-wide feature vector.
type Classifier interface {
	Name() string
	Kind() string
	// PredictProba returns the positive class probability.
	PredictProba(features []float64) (float64, error)
	// FeatureImportances returns a copy of the per-feature weights.
	FeatureImportances() []float64
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// normalize scales non-negative weights to sum to 1. All-zero input stays zero.
func normalize(weights []float64) []float64 {
	out := make([]float64, len(weights))
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return out
	}
	for i, w := range weights {
		out[i] = w / total
	}
	return out
}

func copyImportances(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

func checkWidth(features []float64) error {
	if len(features) != domain.FeatureCount {
		return &WidthError{Got: len(features)}
	}
	return nil
}
