package services

import (
	"fmt"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
)

func validationError(msg string) error {
	return fmt.Errorf("%s: %w", msg, apperrors.ErrValidation)
}
