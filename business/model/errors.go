package model

import (
	"errors"
	"fmt"

	"upliftService/domain"
)

var ErrInvalidArtifact = errors.New("invalid model artifact")

type WidthError struct {
	Got int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("feature width mismatch, expected: %d, got %d", domain.FeatureCount, e.Got)
}
