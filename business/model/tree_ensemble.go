package model

import (
	"fmt"

	"upliftService/domain"
)

// TreeEnsembleModel is a gradient boosted ensemble of binary regression trees
// with a logistic link, the layout produced by dumping a boosted classifier.
type TreeEnsembleModel struct {
	name        string
	baseMargin  float64
	trees       []domain.Tree
	importances []float64
}

func (m *TreeEnsembleModel) Name() string { return m.name }

func (m *TreeEnsembleModel) Kind() string { return "tree_ensemble" }

func (m *TreeEnsembleModel) PredictProba(features []float64) (float64, error) {
	if err := checkWidth(features); err != nil {
		return 0, err
	}
	margin := m.baseMargin
	for i, tree := range m.trees {
		leaf, err := walk(tree, features)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		margin += leaf
	}
	return sigmoid(margin), nil
}

func (m *TreeEnsembleModel) FeatureImportances() []float64 {
	return copyImportances(m.importances)
}

func walk(tree domain.Tree, features []float64) (float64, error) {
	idx := 0
	// a valid tree reaches a leaf in at most len(Nodes) steps
	for steps := 0; steps <= len(tree.Nodes); steps++ {
		node := tree.Nodes[idx]
		if node.IsLeaf {
			return node.Leaf, nil
		}
		if features[node.Feature] < node.Threshold {
			idx = node.Yes
		} else {
			idx = node.No
		}
	}
	return 0, fmt.Errorf("no leaf reached after %d steps", len(tree.Nodes))
}

// splitImportances counts how often each feature is used to split, normalized.
func splitImportances(trees []domain.Tree) []float64 {
	counts := make([]float64, domain.FeatureCount)
	for _, tree := range trees {
		for _, node := range tree.Nodes {
			if !node.IsLeaf {
				counts[node.Feature]++
			}
		}
	}
	return normalize(counts)
}
