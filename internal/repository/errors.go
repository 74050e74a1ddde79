package repository

import "errors"

// ErrIllegalTransition is returned by RequestRepository.Transition when the
// row's current status, re-read inside the transaction, does not allow the
// requested target.
var ErrIllegalTransition = errors.New("illegal status transition")
