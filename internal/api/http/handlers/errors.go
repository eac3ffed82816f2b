package handlers

import (
	"errors"

	"github.com/architdhariwal/sms-backend/internal/domain"
	apperrors "github.com/architdhariwal/sms-backend/pkg/util"
)

// repoError turns repository outcomes into client-facing errors for resource.
// Everything else is left for the error middleware.
func repoError(err error, resource, duplicateMessage string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, domain.ErrDuplicateKey):
		return apperrors.NewDuplicateKey(duplicateMessage, nil)
	case errors.Is(err, domain.ErrImmutableField), errors.Is(err, domain.ErrInvalidRecord):
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return err
}
