package listing

import (
	"github.com/pkg/errors"

	"github.com/trezcool/tutoria/core"
)

var (
	// ErrInvalidQuery is the cause of every client-side query error (see core.ValidationError).
	ErrInvalidQuery = errors.New("invalid query")

	ErrUnknownResource = errors.New("unknown resource")
	ErrNoTenant        = errors.New("no tenant resolved for caller")
	ErrTenantMismatch  = errors.New("predicate is not scoped to the caller's tenant")
)

func invalidQuery(flds ...core.FieldError) error {
	return core.NewValidationError(ErrInvalidQuery, flds...)
}

func fieldErr(field, msg string) core.FieldError {
	return core.FieldError{Field: field, Error: msg}
}
