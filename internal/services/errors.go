package services

import (
	"errors"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/repos"
)

// storeErr translates storage signals into client-facing errors.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repos.ErrNotFound):
		return apperr.NotFound(what)
	case errors.Is(err, repos.ErrDuplicate):
		return apperr.Conflict(what + " already exists")
	default:
		return apperr.Internal(err)
	}
}

func deleteResult(ok bool, err error, what string) error {
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound(what)
	}
	return nil
}
