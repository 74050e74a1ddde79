package auth

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfessionNotFound = errors.New("profession not found")
	ErrAccountDisabled    = errors.New("account disabled")
)
