package uplift

import (
	"upliftService/domain"
)

// Assemble packages the uplift and canonical-order contributions into the
// result. Slot i is reported to callers as feature{i+1}.
func Assemble(uplift float64, contributions [domain.FeatureCount]float64) domain.UpliftResult {
	return domain.UpliftResult{
		Prediction:           uplift,
		FeatureContributions: domain.ContributionMap(contributions),
	}
}
