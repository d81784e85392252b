package model

import (
	"math"
	"testing"

	"upliftService/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logisticArtifact(intercept float64, coef []float64) domain.ModelArtifact {
	return domain.ModelArtifact{
		Role: domain.RoleControl,
		Name: "control-lr",
		Kind: domain.ModelKindLogistic,
		Params: domain.ModelParams{
			Logistic: &domain.LogisticParams{Intercept: intercept, Coefficients: coef},
		},
	}
}

// one stump on feature 2 plus a constant tree
func stumpArtifact() domain.ModelArtifact {
	return domain.ModelArtifact{
		Role: domain.RoleTreated,
		Name: "treated-gbt",
		Kind: domain.ModelKindTreeEnsemble,
		Params: domain.ModelParams{
			TreeEnsemble: &domain.TreeEnsembleParams{
				BaseMargin: 0,
				Trees: []domain.Tree{
					{Nodes: []domain.TreeNode{
						{Feature: 2, Threshold: 0.5, Yes: 1, No: 2},
						{IsLeaf: true, Leaf: -1},
						{IsLeaf: true, Leaf: 1},
					}},
					{Nodes: []domain.TreeNode{{IsLeaf: true, Leaf: 0.25}}},
				},
			},
		},
	}
}

func TestLogisticPredict(t *testing.T) {
	coef := make([]float64, domain.FeatureCount)
	coef[0] = 2
	coef[13] = -1

	clf, err := Build(logisticArtifact(0.5, coef))
	require.NoError(t, err)
	assert.Equal(t, "control-lr", clf.Name())
	assert.Equal(t, "logistic", clf.Kind())

	x := make([]float64, domain.FeatureCount)
	x[0] = 1
	x[13] = 1
	p, err := clf.PredictProba(x)
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-1.5)), p, 1e-12)

	imp := clf.FeatureImportances()
	assert.InDelta(t, 2.0/3.0, imp[0], 1e-12)
	assert.InDelta(t, 1.0/3.0, imp[13], 1e-12)
}

func TestLogisticExplicitImportances(t *testing.T) {
	art := logisticArtifact(0, make([]float64, domain.FeatureCount))
	art.Params.Importances = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

	clf, err := Build(art)
	require.NoError(t, err)

	imp := clf.FeatureImportances()
	assert.Equal(t, art.Params.Importances, imp)

	imp[0] = 100
	assert.Equal(t, 1.0, clf.FeatureImportances()[0], "importances must be returned as a copy")
}

func TestTreeEnsemblePredict(t *testing.T) {
	clf, err := Build(stumpArtifact())
	require.NoError(t, err)
	assert.Equal(t, "tree_ensemble", clf.Kind())

	x := make([]float64, domain.FeatureCount)
	p, err := clf.PredictProba(x)
	require.NoError(t, err)
	assert.InDelta(t, sigmoid(-0.75), p, 1e-12)

	x[2] = 0.5
	p, err = clf.PredictProba(x)
	require.NoError(t, err)
	assert.InDelta(t, sigmoid(1.25), p, 1e-12)

	imp := clf.FeatureImportances()
	assert.Equal(t, 1.0, imp[2])
	assert.Equal(t, 0.0, imp[0])
}

func TestPredictRejectsWrongWidth(t *testing.T) {
	clf, err := Build(stumpArtifact())
	require.NoError(t, err)

	_, err = clf.PredictProba(make([]float64, 13))
	var werr *WidthError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, 13, werr.Got)
}

func TestBuildRejectsInvalidArtifacts(t *testing.T) {
	cases := map[string]func(a *domain.ModelArtifact){
		"missing name":     func(a *domain.ModelArtifact) { a.Name = "" },
		"unknown kind":     func(a *domain.ModelArtifact) { a.Kind = "svm" },
		"unknown role":     func(a *domain.ModelArtifact) { a.Role = "holdout" },
		"missing params":   func(a *domain.ModelArtifact) { a.Params.Logistic = nil },
		"short coef":       func(a *domain.ModelArtifact) { a.Params.Logistic.Coefficients = []float64{1} },
		"nan intercept":    func(a *domain.ModelArtifact) { a.Params.Logistic.Intercept = math.NaN() },
		"short importance": func(a *domain.ModelArtifact) { a.Params.Importances = []float64{1, 2} },
		"negative importance": func(a *domain.ModelArtifact) {
			a.Params.Importances = make([]float64, domain.FeatureCount)
			a.Params.Importances[3] = -1
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			art := logisticArtifact(0, make([]float64, domain.FeatureCount))
			mutate(&art)
			_, err := Build(art)
			assert.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}
}

func TestBuildRejectsDanglingTreeNode(t *testing.T) {
	art := stumpArtifact()
	art.Params.TreeEnsemble.Trees[0].Nodes[0].No = 7

	_, err := Build(art)
	assert.ErrorIs(t, err, ErrInvalidArtifact)
}

func TestTreeWalkDetectsCycle(t *testing.T) {
	tree := domain.Tree{Nodes: []domain.TreeNode{{Feature: 0, Threshold: 1, Yes: 0, No: 0}}}
	_, err := walk(tree, make([]float64, domain.FeatureCount))
	assert.Error(t, err)
}
