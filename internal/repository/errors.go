package repository

import (
	"errors"
	"fmt"

	"go-fridge-tracker/internal/docstore"
	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/pkg/apierror"
)

// lookupError maps a missing document to a NOT_FOUND APIError that matches
// both kind and model.ErrNotFound.
func lookupError(err error, kind error, id string, action string) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return apierror.NotFound(fmt.Errorf("%w: %w", kind, model.ErrNotFound), kind.Error(), id)
	}
	return fmt.Errorf("%s: %w", action, err)
}
