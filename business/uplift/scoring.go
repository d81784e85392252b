package uplift

import (
	"errors"
	"fmt"
	"math"

	"upliftService/business/model"
	"upliftService/domain"
)

type Scores struct {
	Control domain.ModelScore
	Treated domain.ModelScore
}

// DualModelScorer runs the control and treated classifiers on the same record.
type DualModelScorer struct {
	control model.Classifier
	treated model.Classifier
}

func NewDualModelScorer(control, treated model.Classifier) DualModelScorer {
	return DualModelScorer{control: control, treated: treated}
}

func (s DualModelScorer) Score(scaled domain.FeatureRecord) (Scores, error) {
	features := scaled.Slice()

	control, err := invoke(domain.RoleControl, s.control, features)
	if err != nil {
		return Scores{}, err
	}
	treated, err := invoke(domain.RoleTreated, s.treated, features)
	if err != nil {
		return Scores{}, err
	}

	return Scores{
		Control: domain.ModelScore{Role: domain.RoleControl, Probability: control},
		Treated: domain.ModelScore{Role: domain.RoleTreated, Probability: treated},
	}, nil
}

func invoke(role domain.ModelRole, clf model.Classifier, features []float64) (p float64, err error) {
	if clf == nil {
		return 0, &ScoringError{Role: role, Err: errors.New("model not loaded")}
	}

	defer func() {
		if r := recover(); r != nil {
			p, err = 0, &ScoringError{Role: role, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	p, err = clf.PredictProba(features)
	if err != nil {
		return 0, &ScoringError{Role: role, Err: err}
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, &ScoringError{Role: role, Err: fmt.Errorf("probability %v outside [0,1]", p)}
	}
	return p, nil
}
