package uplift

import (
	"fmt"
	"math"

	"upliftService/domain"
)

type ScoreCorrection struct {
	Applied bool
	Offset  float64
	// Treated is the treated score after correction.
	Treated float64
}

// CorrectScores separates numerically tied scores by adding a data dependent
// offset to the treated score: max(0.001, |sum(scaled continuous) * 0.001|).
func CorrectScores(control, treated float64, scaled domain.FeatureRecord) ScoreCorrection {
	if math.Abs(treated-control) >= scoreTieEpsilon {
		return ScoreCorrection{Treated: treated}
	}

	offset := 0.0
	for _, v := range scaled.Continuous() {
		offset += v * offsetWeight
	}
	offset = math.Max(minScoreOffset, math.Abs(offset))

	return ScoreCorrection{
		Applied: true,
		Offset:  offset,
		Treated: treated + offset,
	}
}

// ImportanceDelta returns treated - control, or a synthetic alternating
// delta of 10% of the control importance when both vectors are identical.
// The inputs are never modified.
func ImportanceDelta(control, treated []float64) (delta []float64, synthetic bool, err error) {
	if len(control) != domain.FeatureCount || len(treated) != domain.FeatureCount {
		return nil, false, fmt.Errorf("%w: importance vectors must have %d entries, got %d and %d",
			ErrAllocation, domain.FeatureCount, len(control), len(treated))
	}

	delta = make([]float64, domain.FeatureCount)
	if ImportancesIdentical(control, treated) {
		for i, c := range control {
			sign := 1.0
			if i%2 != 0 {
				sign = -1.0
			}
			delta[i] = c * syntheticImportanceFactor * sign
		}
		return delta, true, nil
	}

	for i := range delta {
		delta[i] = treated[i] - control[i]
	}
	return delta, false, nil
}

func ImportancesIdentical(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
