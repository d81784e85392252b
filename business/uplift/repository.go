package uplift

import (
	"context"
	"fmt"

	"upliftService/business/model"
	"upliftService/domain"
)

// ArtifactRepository loads the control model, the treated model and the
// scaler that together make up one serving configuration.
type ArtifactRepository interface {
	LoadBundle(ctx context.Context) (domain.ArtifactBundle, error)
}

// LoadModelContext reads a bundle from repo and builds the shared model state.
// The bundle is returned for its metadata.
func LoadModelContext(ctx context.Context, repo ArtifactRepository) (*ModelContext, domain.ArtifactBundle, error) {
	bundle, err := repo.LoadBundle(ctx)
	if err != nil {
		return nil, bundle, fmt.Errorf("load artifact bundle: %w", err)
	}
	models, err := ModelContextFromBundle(bundle)
	if err != nil {
		return nil, bundle, err
	}
	return models, bundle, nil
}

func ModelContextFromBundle(bundle domain.ArtifactBundle) (*ModelContext, error) {
	if bundle.Control.Role != domain.RoleControl {
		return nil, fmt.Errorf("%w: control artifact has role %q", model.ErrInvalidArtifact, bundle.Control.Role)
	}
	if bundle.Treated.Role != domain.RoleTreated {
		return nil, fmt.Errorf("%w: treated artifact has role %q", model.ErrInvalidArtifact, bundle.Treated.Role)
	}

	control, err := model.Build(bundle.Control)
	if err != nil {
		return nil, err
	}
	treated, err := model.Build(bundle.Treated)
	if err != nil {
		return nil, err
	}

	scaler, err := NewScalerParams(bundle.Scaler.Params)
	if err != nil {
		return nil, fmt.Errorf("scaler %q: %w", bundle.Scaler.Name, err)
	}

	return NewModelContext(control, treated, scaler)
}
