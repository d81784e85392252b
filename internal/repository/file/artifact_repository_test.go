package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"upliftService/business/uplift"
	"upliftService/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlBundle = `
control:
  role: control
  name: control-lr
  version: "2024-01"
  kind: logistic
  params:
    logistic:
      intercept: -0.5
      coefficients: [0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.1, 1.2, 0.3, 0.1]
treated:
  role: treated
  name: treated-gbt
  kind: tree_ensemble
  params:
    importances: [0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0]
    tree_ensemble:
      base_margin: 0.1
      trees:
        - nodes:
            - {feature: 2, threshold: 0.5, yes: 1, no: 2}
            - {is_leaf: true, leaf: -0.4}
            - {is_leaf: true, leaf: 0.8}
scaler:
  name: standard
  params:
    f0: {mean: 1, scale: 2}
    f11: {mean: 0.5, scale: 0.25}
`

const jsonBundle = `{
  "control": {"role": "control", "name": "c", "kind": "logistic",
    "params": {"logistic": {"intercept": 0, "coefficients": [1,1,1,1,1,1,1,1,1,1,1,1,1,1]}}},
  "treated": {"role": "treated", "name": "t", "kind": "logistic",
    "params": {"logistic": {"intercept": 1, "coefficients": [1,1,1,1,1,1,1,1,1,1,1,1,1,1]}}},
  "scaler": {"name": "s", "params": {"f3": {"mean": 2, "scale": 4}}}
}`

func writeBundle(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBundleYAML(t *testing.T) {
	repo := NewArtifactRepository(writeBundle(t, "bundle.yaml", yamlBundle))

	b, err := repo.LoadBundle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.RoleControl, b.Control.Role)
	assert.Equal(t, "2024-01", b.Control.Version)
	require.NotNil(t, b.Control.Params.Logistic)
	assert.Len(t, b.Control.Params.Logistic.Coefficients, domain.FeatureCount)

	require.NotNil(t, b.Treated.Params.TreeEnsemble)
	nodes := b.Treated.Params.TreeEnsemble.Trees[0].Nodes
	require.Len(t, nodes, 3)
	assert.Equal(t, 2, nodes[0].Feature)
	assert.True(t, nodes[2].IsLeaf)
	assert.Equal(t, 0.8, nodes[2].Leaf)
	assert.Equal(t, 1.0, b.Treated.Params.Importances[2])

	assert.Equal(t, domain.ScaleParam{Mean: 0.5, Scale: 0.25}, b.Scaler.Params["f11"])
}

func TestLoadBundleJSON(t *testing.T) {
	repo := NewArtifactRepository(writeBundle(t, "bundle.JSON", jsonBundle))

	b, err := repo.LoadBundle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t", b.Treated.Name)
	assert.Equal(t, 1.0, b.Treated.Params.Logistic.Intercept)
	assert.Equal(t, domain.ScaleParam{Mean: 2, Scale: 4}, b.Scaler.Params["f3"])
}

func TestLoadBundleErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		repo := NewArtifactRepository(filepath.Join(t.TempDir(), "nope.json"))
		_, err := repo.LoadBundle(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("extension", func(t *testing.T) {
		repo := NewArtifactRepository(writeBundle(t, "bundle.toml", "x = 1"))
		_, err := repo.LoadBundle(context.Background())
		assert.ErrorContains(t, err, "unsupported")
	})

	t.Run("malformed", func(t *testing.T) {
		repo := NewArtifactRepository(writeBundle(t, "bundle.json", "{"))
		_, err := repo.LoadBundle(context.Background())
		assert.ErrorContains(t, err, "decode artifact bundle")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		repo := NewArtifactRepository(writeBundle(t, "bundle.json", jsonBundle))
		_, err := repo.LoadBundle(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestShippedBundleBuilds(t *testing.T) {
	repo := NewArtifactRepository(filepath.Join("..", "..", "..", "artifacts", "bundle.json"))

	b, err := repo.LoadBundle(context.Background())
	require.NoError(t, err)

	models, err := uplift.ModelContextFromBundle(b)
	require.NoError(t, err)
	assert.True(t, models.ImportancesDiffer())
}
