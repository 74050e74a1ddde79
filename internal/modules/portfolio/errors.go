package portfolio

import "errors"

var (
	ErrNotFound       = errors.New("portfolio item not found")
	ErrWorkerNotFound = errors.New("worker profile not found")
	ErrForbidden      = errors.New("forbidden")
	ErrValidation     = errors.New("validation error")
)
