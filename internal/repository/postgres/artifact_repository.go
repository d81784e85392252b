package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"upliftService/business/uplift"
	"upliftService/domain"

	"gorm.io/gorm"
)

var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactRepository serves the most recent control, treated and scaler rows.
type ArtifactRepository struct {
	DB *gorm.DB
}

var _ uplift.ArtifactRepository = (*ArtifactRepository)(nil)

func NewArtifactRepository(db *gorm.DB) *ArtifactRepository {
	return &ArtifactRepository{DB: db}
}

func (r *ArtifactRepository) Migrate() error {
	return r.DB.AutoMigrate(&domain.ModelArtifact{}, &domain.ScalerArtifact{})
}

func (r *ArtifactRepository) LoadBundle(ctx context.Context) (domain.ArtifactBundle, error) {
	var bundle domain.ArtifactBundle

	control, err := r.latestModel(ctx, domain.RoleControl)
	if err != nil {
		return bundle, err
	}
	treated, err := r.latestModel(ctx, domain.RoleTreated)
	if err != nil {
		return bundle, err
	}

	var scaler domain.ScalerArtifact
	err = r.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		First(&scaler).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bundle, fmt.Errorf("%w: scaler", ErrArtifactNotFound)
	}
	if err != nil {
		return bundle, err
	}
	if err := decodeScaler(&scaler); err != nil {
		return bundle, err
	}

	bundle.Control = control
	bundle.Treated = treated
	bundle.Scaler = scaler
	return bundle, nil
}

// SaveBundle inserts all three artifacts in one transaction so they become
// the latest rows together.
func (r *ArtifactRepository) SaveBundle(ctx context.Context, bundle domain.ArtifactBundle) error {
	control, treated := bundle.Control, bundle.Treated
	scaler := bundle.Scaler

	for _, m := range []*domain.ModelArtifact{&control, &treated} {
		if err := encodeModel(m); err != nil {
			return err
		}
	}
	if err := encodeScaler(&scaler); err != nil {
		return err
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&control).Error; err != nil {
			return err
		}
		if err := tx.Create(&treated).Error; err != nil {
			return err
		}
		return tx.Create(&scaler).Error
	})
}

func (r *ArtifactRepository) latestModel(ctx context.Context, role domain.ModelRole) (domain.ModelArtifact, error) {
	var m domain.ModelArtifact
	err := r.DB.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, fmt.Errorf("%w: %s model", ErrArtifactNotFound, role)
	}
	if err != nil {
		return m, err
	}
	if err := decodeModel(&m); err != nil {
		return m, err
	}
	return m, nil
}

func decodeModel(m *domain.ModelArtifact) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("model %q has no params", m.Name)
	}
	if err := json.Unmarshal(m.Payload, &m.Params); err != nil {
		return fmt.Errorf("decode params of model %q: %w", m.Name, err)
	}
	return nil
}

func encodeModel(m *domain.ModelArtifact) error {
	raw, err := json.Marshal(m.Params)
	if err != nil {
		return fmt.Errorf("encode params of model %q: %w", m.Name, err)
	}
	m.Payload = raw
	return nil
}

func decodeScaler(s *domain.ScalerArtifact) error {
	if len(s.Payload) == 0 {
		return fmt.Errorf("scaler %q has no params", s.Name)
	}
	if err := json.Unmarshal(s.Payload, &s.Params); err != nil {
		return fmt.Errorf("decode params of scaler %q: %w", s.Name, err)
	}
	return nil
}

func encodeScaler(s *domain.ScalerArtifact) error {
	raw, err := json.Marshal(s.Params)
	if err != nil {
		return fmt.Errorf("encode params of scaler %q: %w", s.Name, err)
	}
	s.Payload = raw
	return nil
}
