package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	FeatureCount    = 14
	ContinuousCount = 12

	VisitKey    = "visit"
	ExposureKey = "exposure"
)

// FeatureKeys is the canonical feature order: f0..f11, visit, exposure.
var FeatureKeys = [FeatureCount]string{
	"f0", "f1", "f2", "f3", "f4", "f5",
	"f6", "f7", "f8", "f9", "f10", "f11",
	VisitKey, ExposureKey,
}

// ExternalKey maps a canonical slot index to the feature{i+1} naming used by clients.
func ExternalKey(i int) string {
	return "feature" + strconv.Itoa(i+1)
}

// FeatureRecord holds the 14 canonical slots in FeatureKeys order.
type FeatureRecord [FeatureCount]float64

func (r FeatureRecord) Continuous() []float64 {
	out := make([]float64, ContinuousCount)
	copy(out, r[:ContinuousCount])
	return out
}

func (r FeatureRecord) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, r[:])
	return out
}

type ModelRole string

const (
	RoleControl ModelRole = "control"
	RoleTreated ModelRole = "treated"
)

type ModelScore struct {
	Role        ModelRole `json:"role"`
	Probability float64   `json:"probability"`
}

// ContributionMap is keyed by external feature name and marshals in
// feature1..feature14 order.
type ContributionMap [FeatureCount]float64

func (m ContributionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", ExternalKey(i), err)
		}
		buf.WriteString(strconv.Quote(ExternalKey(i)))
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m ContributionMap) Sum() float64 {
	sum := 0.0
	for _, v := range m {
		sum += v
	}
	return sum
}

type UpliftResult struct {
	Prediction           float64         `json:"prediction"`
	FeatureContributions ContributionMap `json:"feature_contributions"`
}

type ModelDetails struct {
	ControlName              string    `json:"control_name"`
	ControlType              string    `json:"control_type"`
	TreatedName              string    `json:"treated_name"`
	TreatedType              string    `json:"treated_type"`
	AreSameObject            bool      `json:"are_same_object"`
	FeatureImportancesDiffer bool      `json:"feature_importances_differ"`
	ControlImportances       []float64 `json:"control_importances,omitempty"`
	TreatedImportances       []float64 `json:"treated_importances,omitempty"`
	NormalizationPolicy      string    `json:"normalization_policy,omitempty"`
}
