package request

import (
	"errors"
	"fmt"

	"craftmosul/internal/domain"
)

var (
	ErrNotFound       = errors.New("request not found")
	ErrWorkerNotFound = errors.New("worker not found")
	ErrForbidden      = errors.New("forbidden")
	ErrValidation     = errors.New("validation error")
)

// TransitionError reports a status change outside the legality table. The
// message names the current status and its allowed targets so clients can
// see why the change was refused.
type TransitionError struct {
	From domain.RequestStatus
	To   domain.RequestStatus
}

func (e *TransitionError) Error() string {
	allowed := domain.AllowedTransitions(e.From)
	if len(allowed) == 0 {
		return fmt.Sprintf("cannot transition request from terminal status %q", e.From)
	}
	return fmt.Sprintf("cannot transition request from %q to %q, allowed targets: %v", e.From, e.To, allowed)
}
