package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"upliftService/business/uplift"
	"upliftService/domain"

	"gopkg.in/yaml.v3"
)

// ArtifactRepository reads a whole bundle from a single JSON or YAML file.
type ArtifactRepository struct {
	Path string
}

var _ uplift.ArtifactRepository = (*ArtifactRepository)(nil)

func NewArtifactRepository(path string) *ArtifactRepository {
	return &ArtifactRepository{Path: path}
}

func (r *ArtifactRepository) LoadBundle(ctx context.Context) (domain.ArtifactBundle, error) {
	var bundle domain.ArtifactBundle

	if err := ctx.Err(); err != nil {
		return bundle, err
	}

	data, err := os.ReadFile(r.Path)
	if err != nil {
		return bundle, fmt.Errorf("read artifact bundle: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(r.Path)); ext {
	case ".json":
		err = json.Unmarshal(data, &bundle)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &bundle)
	default:
		return bundle, fmt.Errorf("unsupported artifact bundle extension %q", ext)
	}
	if err != nil {
		return bundle, fmt.Errorf("decode artifact bundle %s: %w", r.Path, err)
	}

	return bundle, nil
}
