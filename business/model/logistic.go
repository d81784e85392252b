package model

import (
	"math"
)

// LogisticModel is a fitted logistic regression.
type LogisticModel struct {
	name         string
	intercept    float64
	coefficients []float64
	importances  []float64
}

func (m *LogisticModel) Name() string { return m.name }

func (m *LogisticModel) Kind() string { return "logistic" }

func (m *LogisticModel) PredictProba(features []float64) (float64, error) {
	if err := checkWidth(features); err != nil {
		return 0, err
	}
	z := m.intercept
	for i, x := range features {
		z += m.coefficients[i] * x
	}
	return sigmoid(z), nil
}

func (m *LogisticModel) FeatureImportances() []float64 {
	return copyImportances(m.importances)
}

// coefficientImportances is the normalized absolute coefficient magnitude.
func coefficientImportances(coef []float64) []float64 {
	abs := make([]float64, len(coef))
	for i, c := range coef {
		abs[i] = math.Abs(c)
	}
	return normalize(abs)
}
