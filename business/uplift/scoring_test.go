package uplift

import (
	"errors"
	"testing"

	"upliftService/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualModelScorer(t *testing.T) {
	var seen []float64
	control := &fakeClassifier{name: "c", prob: 0.2}
	treated := &fakeClassifier{name: "t", predict: func(x []float64) float64 {
		seen = x
		return 0.7
	}}

	var rec domain.FeatureRecord
	for i := range rec {
		rec[i] = float64(i)
	}

	scores, err := NewDualModelScorer(control, treated).Score(rec)
	require.NoError(t, err)
	assert.Equal(t, domain.ModelScore{Role: domain.RoleControl, Probability: 0.2}, scores.Control)
	assert.Equal(t, domain.ModelScore{Role: domain.RoleTreated, Probability: 0.7}, scores.Treated)
	assert.Equal(t, rec[:], seen, "features are passed in canonical order")
}

func TestDualModelScorerFailures(t *testing.T) {
	ok := &fakeClassifier{prob: 0.5}

	cases := []struct {
		name    string
		control *fakeClassifier
		treated *fakeClassifier
		role    domain.ModelRole
	}{
		{"control error", &fakeClassifier{err: errors.New("boom")}, ok, domain.RoleControl},
		{"treated error", ok, &fakeClassifier{err: errors.New("boom")}, domain.RoleTreated},
		{"treated panic", ok, &fakeClassifier{panicMsg: "index out of range"}, domain.RoleTreated},
		{"above one", &fakeClassifier{prob: 1.2}, ok, domain.RoleControl},
		{"negative", ok, &fakeClassifier{prob: -0.1}, domain.RoleTreated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDualModelScorer(tc.control, tc.treated).Score(domain.FeatureRecord{})

			var scErr *ScoringError
			require.ErrorAs(t, err, &scErr)
			assert.Equal(t, tc.role, scErr.Role)
			assert.ErrorIs(t, err, ErrScoring)
		})
	}
}

func TestDualModelScorerWrapsCause(t *testing.T) {
	cause := errors.New("model file truncated")
	_, err := NewDualModelScorer(&fakeClassifier{err: cause}, &fakeClassifier{}).Score(domain.FeatureRecord{})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "control model")
}
