package uplift

import (
	"fmt"
	"strings"
)

// NormalizationPolicy selects the transform applied to the 12 raw continuous
// values before scaling.
type NormalizationPolicy string

const (
	// PolicySqrt takes the square root of each value. Negative values are rejected.
	PolicySqrt NormalizationPolicy = "sqrt"
	// PolicyCap divides values greater than 1 by Config.CapDivisor.
	PolicyCap NormalizationPolicy = "cap"
	// PolicyNone passes values through unchanged.
	PolicyNone NormalizationPolicy = "none"
)

func ParsePolicy(s string) (NormalizationPolicy, error) {
	switch p := NormalizationPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicySqrt, PolicyCap, PolicyNone:
		return p, nil
	default:
		return "", fmt.Errorf("unknown normalization policy %q", s)
	}
}

type Config struct {
	Normalization NormalizationPolicy
	CapDivisor    float64
	// ZeroFillMissing fills canonical slots absent from a keyed payload with 0.
	ZeroFillMissing bool
}

const (
	defaultCapDivisor = 100.0

	// score degeneracy
	scoreTieEpsilon = 1e-10
	minScoreOffset  = 0.001
	offsetWeight    = 0.001

	// importance degeneracy
	syntheticImportanceFactor = 0.1

	// allocation
	weakContributionThreshold = 0.01
	sumTolerance              = 0.001
	// |sum| below this fraction of the largest raw contribution counts as cancelled
	cancellationRatio = 1e-6
)

func DefaultConfig() Config {
	return Config{
		Normalization:   PolicySqrt,
		CapDivisor:      defaultCapDivisor,
		ZeroFillMissing: true,
	}
}

// NewConfig builds a Config from deployment settings, rejecting unknown
// policies and a non-positive cap divisor under the cap policy.
func NewConfig(policy string, capDivisor float64, zeroFill bool) (Config, error) {
	p, err := ParsePolicy(policy)
	if err != nil {
		return Config{}, err
	}
	if p == PolicyCap && !(capDivisor > 0) {
		return Config{}, fmt.Errorf("cap divisor must be positive, got %v", capDivisor)
	}
	return Config{
		Normalization:   p,
		CapDivisor:      capDivisor,
		ZeroFillMissing: zeroFill,
	}, nil
}
