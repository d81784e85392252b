package uplift

import (
	"errors"
	"fmt"
	"math"

	"upliftService/business/model"
	"upliftService/domain"
)

// ModelContext is the process wide, read-only state shared by every request:
// both classifiers, their importance vectors and the scaler. Build it once at
// startup and pass it by pointer; nothing in this package writes to it.
type ModelContext struct {
	control           model.Classifier
	treated           model.Classifier
	controlImportance []float64
	treatedImportance []float64
	scaler            ScalerParams
}

func NewModelContext(control, treated model.Classifier, scaler ScalerParams) (*ModelContext, error) {
	if control == nil || treated == nil {
		return nil, errors.New("control and treated models are required")
	}
	if scaler.params == nil {
		return nil, &ScalingError{Feature: domain.FeatureKeys[0], Reason: "missing"}
	}

	controlImp, err := checkImportances(domain.RoleControl, control.FeatureImportances())
	if err != nil {
		return nil, err
	}
	treatedImp, err := checkImportances(domain.RoleTreated, treated.FeatureImportances())
	if err != nil {
		return nil, err
	}

	return &ModelContext{
		control:           control,
		treated:           treated,
		controlImportance: controlImp,
		treatedImportance: treatedImp,
		scaler:            scaler,
	}, nil
}

func checkImportances(role domain.ModelRole, imp []float64) ([]float64, error) {
	if len(imp) != domain.FeatureCount {
		return nil, fmt.Errorf("%s model: expected %d feature importances, got %d", role, domain.FeatureCount, len(imp))
	}
	out := make([]float64, len(imp))
	for i, w := range imp {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("%s model: importance %d (%v) must be finite and non-negative", role, i, w)
		}
		out[i] = w
	}
	return out, nil
}

// SameModel reports whether control and treated are the same classifier value.
func (m *ModelContext) SameModel() (same bool) {
	// interface comparison panics on uncomparable dynamic types
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return m.control == m.treated
}

func (m *ModelContext) ImportancesDiffer() bool {
	return !ImportancesIdentical(m.controlImportance, m.treatedImportance)
}

func (m *ModelContext) ControlImportances() []float64 {
	return append([]float64(nil), m.controlImportance...)
}

func (m *ModelContext) TreatedImportances() []float64 {
	return append([]float64(nil), m.treatedImportance...)
}
