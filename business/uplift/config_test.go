package uplift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig("CAP", 50, false)
	require.NoError(t, err)
	assert.Equal(t, Config{Normalization: PolicyCap, CapDivisor: 50, ZeroFillMissing: false}, cfg)

	cfg, err = NewConfig("none", 0, true)
	require.NoError(t, err)
	assert.Equal(t, PolicyNone, cfg.Normalization)

	_, err = NewConfig("log", 100, true)
	assert.Error(t, err)

	_, err = NewConfig("cap", 0, true)
	assert.Error(t, err)
}

func TestNewConfigFlowsIntoDiagnostics(t *testing.T) {
	cfg, err := NewConfig("cap", 100, true)
	require.NoError(t, err)

	svc := newTestService(t,
		&fakeClassifier{prob: 0.3, importances: constImportances(0.1)},
		&fakeClassifier{prob: 0.4, importances: constImportances(0.2)},
		uniformScaler(t, 0, 1), cfg)
	assert.Equal(t, "cap", svc.Diagnostics().NormalizationPolicy)
}
