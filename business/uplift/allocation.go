package uplift

import (
	"fmt"
	"math"

	"upliftService/domain"
)

type Allocation struct {
	Contributions [domain.FeatureCount]float64
	// Synthetic is set when the rank weighted fallback replaced the primary allocation.
	Synthetic bool
	// ScaleFactor is uplift/sum when the sum correction ran, otherwise 1.
	ScaleFactor float64
}

// Allocate distributes uplift across the 14 features so that the
// contributions sum back to uplift.
func Allocate(scaled domain.FeatureRecord, delta []float64, uplift float64) (Allocation, error) {
	if len(delta) != domain.FeatureCount {
		return Allocation{}, fmt.Errorf("%w: importance delta must have %d entries, got %d",
			ErrAllocation, domain.FeatureCount, len(delta))
	}
	if math.IsNaN(uplift) || math.IsInf(uplift, 0) {
		return Allocation{}, fmt.Errorf("%w: uplift %v is not finite", ErrAllocation, uplift)
	}

	alloc := Allocation{ScaleFactor: 1}

	weak := true
	largest := 0.0
	for i := range alloc.Contributions {
		raw := delta[i] * scaled[i] * uplift
		if math.IsNaN(raw) || math.IsInf(raw, 0) {
			return Allocation{}, fmt.Errorf("%w: contribution of %s is not finite", ErrAllocation, domain.FeatureKeys[i])
		}
		alloc.Contributions[i] = raw
		largest = math.Max(largest, math.Abs(raw))
		if math.Abs(raw) >= weakContributionThreshold {
			weak = false
		}
	}

	sum := sumOf(alloc.Contributions)
	if math.IsInf(sum, 0) {
		return Allocation{}, fmt.Errorf("%w: contribution sum overflows", ErrAllocation)
	}

	// a primary allocation that cancels out, exactly or to within rounding of
	// its largest term, cannot be rescaled to a non-zero uplift meaningfully,
	// so it gets the fallback too
	cancelled := math.Abs(sum) <= cancellationRatio*largest
	if weak || (cancelled && uplift != 0) {
		alloc.Contributions = syntheticAllocation(uplift)
		alloc.Synthetic = true
		sum = sumOf(alloc.Contributions)
	}

	if sum != 0 && math.Abs(sum-uplift) > sumTolerance {
		factor := uplift / sum
		for i := range alloc.Contributions {
			alloc.Contributions[i] *= factor
		}
		alloc.ScaleFactor = factor
	}

	for i, v := range alloc.Contributions {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Allocation{}, fmt.Errorf("%w: rescaled contribution of %s is not finite", ErrAllocation, domain.FeatureKeys[i])
		}
		if v == 0 {
			// covers -0.0 as well
			alloc.Contributions[i] = 0
		}
	}

	return alloc, nil
}

// syntheticAllocation is sign_i * ((n-i)/n) * uplift/n with the sign
// alternating by index, starting positive.
func syntheticAllocation(uplift float64) [domain.FeatureCount]float64 {
	var out [domain.FeatureCount]float64
	n := float64(domain.FeatureCount)
	for i := range out {
		sign := 1.0
		if i%2 != 0 {
			sign = -1.0
		}
		magnitude := (n - float64(i)) / n
		out[i] = sign * magnitude * uplift / n
	}
	return out
}

func sumOf(values [domain.FeatureCount]float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}
