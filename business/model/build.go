package model

import (
	"fmt"
	"math"

	"upliftService/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Build validates an artifact and returns the classifier it describes.
func Build(artifact domain.ModelArtifact) (Classifier, error) {
	if err := validate.Struct(artifact); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidArtifact, artifact.Name, err)
	}

	switch artifact.Kind {
	case domain.ModelKindLogistic:
		return buildLogistic(artifact)
	case domain.ModelKindTreeEnsemble:
		return buildTreeEnsemble(artifact)
	default:
		return nil, fmt.Errorf("%w %q: unknown kind %q", ErrInvalidArtifact, artifact.Name, artifact.Kind)
	}
}

func buildLogistic(artifact domain.ModelArtifact) (Classifier, error) {
	params := artifact.Params.Logistic
	if params == nil {
		return nil, fmt.Errorf("%w %q: logistic params missing", ErrInvalidArtifact, artifact.Name)
	}
	if err := checkFinite(append([]float64{params.Intercept}, params.Coefficients...)); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidArtifact, artifact.Name, err)
	}

	importances := artifact.Params.Importances
	if len(importances) == 0 {
		importances = coefficientImportances(params.Coefficients)
	}

	return &LogisticModel{
		name:         artifact.Name,
		intercept:    params.Intercept,
		coefficients: copyImportances(params.Coefficients),
		importances:  copyImportances(importances),
	}, nil
}

func buildTreeEnsemble(artifact domain.ModelArtifact) (Classifier, error) {
	params := artifact.Params.TreeEnsemble
	if params == nil {
		return nil, fmt.Errorf("%w %q: tree_ensemble params missing", ErrInvalidArtifact, artifact.Name)
	}

	trees := make([]domain.Tree, len(params.Trees))
	for t, tree := range params.Trees {
		nodes := make([]domain.TreeNode, len(tree.Nodes))
		for n, node := range tree.Nodes {
			if !node.IsLeaf && (node.Yes >= len(tree.Nodes) || node.No >= len(tree.Nodes)) {
				return nil, fmt.Errorf("%w %q: tree %d node %d points outside the tree", ErrInvalidArtifact, artifact.Name, t, n)
			}
			nodes[n] = node
		}
		trees[t] = domain.Tree{Nodes: nodes}
	}

	importances := artifact.Params.Importances
	if len(importances) == 0 {
		importances = splitImportances(trees)
	}

	return &TreeEnsembleModel{
		name:        artifact.Name,
		baseMargin:  params.BaseMargin,
		trees:       trees,
		importances: copyImportances(importances),
	}, nil
}

func checkFinite(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %d is not finite", i)
		}
	}
	return nil
}
