package engine

import (
	"errors"
	"fmt"

	"github.com/pawsconnect/backend/internal/store"
)

// Failure taxonomy surfaced to callers. Validation and ownership failures
// are raised synchronously for user-facing messaging; everything else from
// the stores is wrapped as an upstream failure and surfaced as-is.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrValidation      = errors.New("validation failed")
	ErrUpstream        = errors.New("upstream unavailable")
)

// storeErr maps adapter errors onto the taxonomy.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}
