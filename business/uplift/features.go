package uplift

import (
	"fmt"
	"math"

	"upliftService/domain"
)

// Normalizer turns caller input into a canonical FeatureRecord.
type Normalizer struct {
	policy     NormalizationPolicy
	capDivisor float64
	zeroFill   bool
}

func NewNormalizer(cfg Config) (Normalizer, error) {
	policy, err := ParsePolicy(string(cfg.Normalization))
	if err != nil {
		return Normalizer{}, err
	}
	if policy == PolicyCap && !(cfg.CapDivisor > 0) {
		return Normalizer{}, fmt.Errorf("cap divisor must be positive, got %v", cfg.CapDivisor)
	}
	return Normalizer{
		policy:     policy,
		capDivisor: cfg.CapDivisor,
		zeroFill:   cfg.ZeroFillMissing,
	}, nil
}

func (n Normalizer) Policy() NormalizationPolicy { return n.policy }

func (n Normalizer) Normalize(in domain.FeatureInput) (domain.FeatureRecord, error) {
	var rec domain.FeatureRecord

	if got := in.Len(); got != domain.FeatureCount {
		return rec, &InputShapeError{Expected: domain.FeatureCount, Got: got}
	}

	switch in.Kind {
	case domain.InputSequence:
		copy(rec[:], in.Sequence)
	case domain.InputKeyed:
		for i := range rec {
			v, ok := lookupKeyed(in.Keyed, i)
			if !ok && !n.zeroFill {
				return rec, &InputShapeError{Expected: domain.FeatureCount, Got: in.Len(), Missing: domain.FeatureKeys[i]}
			}
			rec[i] = v
		}
	default:
		return rec, &InputShapeError{Expected: domain.FeatureCount, Got: 0}
	}

	for i, v := range rec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return rec, &InputValueError{Feature: domain.FeatureKeys[i], Value: v, Reason: "not a finite number"}
		}
	}

	for i := 0; i < domain.ContinuousCount; i++ {
		v, err := n.transform(rec[i])
		if err != nil {
			return rec, &InputValueError{Feature: domain.FeatureKeys[i], Value: rec[i], Reason: err.Error()}
		}
		rec[i] = v
	}

	return rec, nil
}

func (n Normalizer) transform(v float64) (float64, error) {
	switch n.policy {
	case PolicySqrt:
		if v < 0 {
			return 0, fmt.Errorf("negative values are not allowed under %s normalization", PolicySqrt)
		}
		return math.Sqrt(v), nil
	case PolicyCap:
		if v > 1 {
			return v / n.capDivisor, nil
		}
		return v, nil
	default:
		return v, nil
	}
}

// lookupKeyed resolves slot i from its canonical key, the positional alias
// f{i}, then the external alias feature{i+1}.
func lookupKeyed(values map[string]float64, i int) (float64, bool) {
	keys := [...]string{domain.FeatureKeys[i], fmt.Sprintf("f%d", i), domain.ExternalKey(i)}
	for _, k := range keys {
		if v, ok := values[k]; ok {
			return v, true
		}
	}
	return 0, false
}
