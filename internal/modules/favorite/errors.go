package favorite

import "errors"

var (
	ErrNotFound       = errors.New("favorite not found")
	ErrWorkerNotFound = errors.New("worker not found")
	ErrForbidden      = errors.New("forbidden")
	ErrValidation     = errors.New("validation error")
)
