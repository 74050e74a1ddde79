package review

import "errors"

var (
	ErrNotFound            = errors.New("review not found")
	ErrRequestNotFound     = errors.New("request not found")
	ErrRequestNotCompleted = errors.New("request is not completed")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("review already exists for this request")
	ErrValidation          = errors.New("validation error")
)
