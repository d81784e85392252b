package uplift

import (
	"math"
	"testing"

	"upliftService/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleContinuousOnly(t *testing.T) {
	scaler := uniformScaler(t, 1, 2)

	var rec domain.FeatureRecord
	for i := range rec {
		rec[i] = 5
	}

	scaled, err := scaler.Scale(rec)
	require.NoError(t, err)

	for i := 0; i < domain.ContinuousCount; i++ {
		assert.Equal(t, 2.0, scaled[i])
	}
	assert.Equal(t, 5.0, scaled[12])
	assert.Equal(t, 5.0, scaled[13])
	assert.Equal(t, 5.0, rec[0], "input record must not change")
}

func TestScaleZeroValueParams(t *testing.T) {
	_, err := ScalerParams{}.Scale(domain.FeatureRecord{})

	var scErr *ScalingError
	require.ErrorAs(t, err, &scErr)
	assert.Equal(t, "f0", scErr.Feature)
	assert.ErrorIs(t, err, ErrScaling)
}

func TestNewScalerParamsValidation(t *testing.T) {
	full := func() map[string]domain.ScaleParam {
		m := map[string]domain.ScaleParam{}
		for i := 0; i < domain.ContinuousCount; i++ {
			m[domain.FeatureKeys[i]] = domain.ScaleParam{Mean: 0, Scale: 1}
		}
		return m
	}

	cases := map[string]func(m map[string]domain.ScaleParam){
		"missing f7": func(m map[string]domain.ScaleParam) { delete(m, "f7") },
		"zero scale": func(m map[string]domain.ScaleParam) { m["f3"] = domain.ScaleParam{Scale: 0} },
		"nan mean":   func(m map[string]domain.ScaleParam) { m["f0"] = domain.ScaleParam{Mean: math.NaN(), Scale: 1} },
		"inf scale":  func(m map[string]domain.ScaleParam) { m["f11"] = domain.ScaleParam{Scale: math.Inf(1)} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			m := full()
			mutate(m)
			_, err := NewScalerParams(m)
			assert.ErrorIs(t, err, ErrScaling)
		})
	}

	m := full()
	s, err := NewScalerParams(m)
	require.NoError(t, err)

	// later changes to the source map are not visible
	m["f0"] = domain.ScaleParam{Mean: 10, Scale: 1}
	scaled, err := s.Scale(domain.FeatureRecord{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, scaled[0])
}

func TestScaleRejectsOverflow(t *testing.T) {
	scaler := uniformScaler(t, 0, 0.01)

	var rec domain.FeatureRecord
	rec[0] = 1e308

	_, err := scaler.Scale(rec)

	var valErr *InputValueError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "f0", valErr.Feature)
	assert.Equal(t, 1e308, valErr.Value)
	assert.ErrorIs(t, err, ErrInputValue)
}
