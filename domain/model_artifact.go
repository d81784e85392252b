package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ModelKindLogistic     = "logistic"
	ModelKindTreeEnsemble = "tree_ensemble"
)

type LogisticParams struct {
	Intercept    float64   `json:"intercept" yaml:"intercept"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients" validate:"len=14"`
}

// TreeNode is one node of a binary regression tree. Split nodes send
// x[Feature] < Threshold to Yes and everything else to No.
type TreeNode struct {
	IsLeaf    bool    `json:"is_leaf,omitempty" yaml:"is_leaf,omitempty"`
	Leaf      float64 `json:"leaf,omitempty" yaml:"leaf,omitempty"`
	Feature   int     `json:"feature,omitempty" yaml:"feature,omitempty" validate:"gte=0,lt=14"`
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Yes       int     `json:"yes,omitempty" yaml:"yes,omitempty" validate:"gte=0"`
	No        int     `json:"no,omitempty" yaml:"no,omitempty" validate:"gte=0"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes" yaml:"nodes" validate:"min=1,dive"`
}

type TreeEnsembleParams struct {
	BaseMargin float64 `json:"base_margin" yaml:"base_margin"`
	Trees      []Tree  `json:"trees" yaml:"trees" validate:"min=1,dive"`
}

type ModelParams struct {
	// optional; derived from the model when empty
	Importances  []float64           `json:"importances,omitempty" yaml:"importances,omitempty" validate:"omitempty,len=14,dive,gte=0"`
	Logistic     *LogisticParams     `json:"logistic,omitempty" yaml:"logistic,omitempty"`
	TreeEnsemble *TreeEnsembleParams `json:"tree_ensemble,omitempty" yaml:"tree_ensemble,omitempty"`
}

type ModelArtifact struct {
	ID        uint           `gorm:"primaryKey" json:"-" yaml:"-"`
	Role      ModelRole      `gorm:"column:role;not null;index" json:"role" yaml:"role" validate:"required,oneof=control treated"`
	Name      string         `gorm:"column:name;not null" json:"name" yaml:"name" validate:"required"`
	Version   string         `gorm:"column:version" json:"version" yaml:"version"`
	Kind      string         `gorm:"column:kind;not null" json:"kind" yaml:"kind" validate:"required,oneof=logistic tree_ensemble"`
	Params    ModelParams    `gorm:"-" json:"params" yaml:"params"`
	Payload   datatypes.JSON `gorm:"column:params;type:jsonb" json:"-" yaml:"-"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at" yaml:"-"`
}

func (ModelArtifact) TableName() string {
	return "uplift_model_artifacts"
}

type ScaleParam struct {
	Mean  float64 `json:"mean" yaml:"mean"`
	Scale float64 `json:"scale" yaml:"scale"`
}

// ScalerArtifact is a pre-fit standardization keyed by continuous feature (f0..f11).
type ScalerArtifact struct {
	ID        uint                  `gorm:"primaryKey" json:"-" yaml:"-"`
	Name      string                `gorm:"column:name;not null" json:"name" yaml:"name"`
	Version   string                `gorm:"column:version" json:"version" yaml:"version"`
	Params    map[string]ScaleParam `gorm:"-" json:"params" yaml:"params" validate:"required"`
	Payload   datatypes.JSON        `gorm:"column:params;type:jsonb" json:"-" yaml:"-"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at" yaml:"-"`
}

func (ScalerArtifact) TableName() string {
	return "uplift_scaler_artifacts"
}

type ArtifactBundle struct {
	Control ModelArtifact  `json:"control" yaml:"control"`
	Treated ModelArtifact  `json:"treated" yaml:"treated"`
	Scaler  ScalerArtifact `json:"scaler" yaml:"scaler"`
}

type BundleSummary struct {
	ControlName    string    `json:"control_name"`
	ControlVersion string    `json:"control_version"`
	ControlKind    string    `json:"control_kind"`
	TreatedName    string    `json:"treated_name"`
	TreatedVersion string    `json:"treated_version"`
	TreatedKind    string    `json:"treated_kind"`
	ScalerName     string    `json:"scaler_name"`
	ScalerVersion  string    `json:"scaler_version"`
	LoadedAt       time.Time `json:"loaded_at"`
}

func (b ArtifactBundle) Summary(loadedAt time.Time) BundleSummary {
	return BundleSummary{
		ControlName:    b.Control.Name,
		ControlVersion: b.Control.Version,
		ControlKind:    b.Control.Kind,
		TreatedName:    b.Treated.Name,
		TreatedVersion: b.Treated.Version,
		TreatedKind:    b.Treated.Kind,
		ScalerName:     b.Scaler.Name,
		ScalerVersion:  b.Scaler.Version,
		LoadedAt:       loadedAt,
	}
}
