package uplift

import (
	"testing"

	"upliftService/domain"

	"github.com/stretchr/testify/require"
)

type fakeClassifier struct {
	name        string
	prob        float64
	err         error
	panicMsg    string
	importances []float64
	predict     func(features []float64) float64
	calls       int
}

func (f *fakeClassifier) Name() string { return f.name }

func (f *fakeClassifier) Kind() string { return "fake" }

func (f *fakeClassifier) PredictProba(features []float64) (float64, error) {
	f.calls++
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return 0, f.err
	}
	if f.predict != nil {
		return f.predict(features), nil
	}
	return f.prob, nil
}

func (f *fakeClassifier) FeatureImportances() []float64 {
	return append([]float64(nil), f.importances...)
}

func constImportances(v float64) []float64 {
	out := make([]float64, domain.FeatureCount)
	for i := range out {
		out[i] = v
	}
	return out
}

func uniformScaler(t *testing.T, mean, scale float64) ScalerParams {
	t.Helper()
	params := make(map[string]domain.ScaleParam, domain.ContinuousCount)
	for i := 0; i < domain.ContinuousCount; i++ {
		params[domain.FeatureKeys[i]] = domain.ScaleParam{Mean: mean, Scale: scale}
	}
	s, err := NewScalerParams(params)
	require.NoError(t, err)
	return s
}

func newTestService(t *testing.T, control, treated *fakeClassifier, scaler ScalerParams, cfg Config) *UpliftService {
	t.Helper()
	models, err := NewModelContext(control, treated, scaler)
	require.NoError(t, err)
	svc, err := NewUpliftService(models, cfg)
	require.NoError(t, err)
	return svc
}

func seq(continuous float64, visit, exposure float64) domain.FeatureInput {
	values := make([]float64, 0, domain.FeatureCount)
	for i := 0; i < domain.ContinuousCount; i++ {
		values = append(values, continuous)
	}
	values = append(values, visit, exposure)
	return domain.SequenceInput(values...)
}
