package worker

import "errors"

var (
	ErrNotFound   = errors.New("worker not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation error")
)
