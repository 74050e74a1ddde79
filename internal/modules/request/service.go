package request

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"craftmosul/internal/domain"
	"craftmosul/internal/repository"
)

type Service struct {
	requests RequestRepository
	workers  WorkerDirectory
}

func NewService(requests RequestRepository, workers WorkerDirectory) *Service {
	return &Service{requests: requests, workers: workers}
}

// Create opens a new request in state pending. The client id always comes
// from the authenticated principal, never from caller input. Worker
// availability is deliberately not checked here.
func (s *Service) Create(ctx context.Context, clientID int64, req CreateRequestRequest) (*domain.Request, error) {
	if clientID <= 0 || req.WorkerID <= 0 || strings.TrimSpace(req.ProblemDescription) == "" {
		return nil, ErrValidation
	}

	if _, err := s.workers.GetByID(ctx, req.WorkerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}

	r := &domain.Request{
		ClientID:           clientID,
		WorkerID:           req.WorkerID,
		ProblemDescription: req.ProblemDescription,
		Status:             domain.RequestPending,
	}

	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}
	return s.requests.GetByID(ctx, r.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Request, error) {
	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Request, int64, error) {
	return s.requests.List(ctx, limit, offset)
}

func (s *Service) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Request, int64, error) {
	return s.requests.ListByClient(ctx, clientID, limit, offset)
}

func (s *Service) ListByWorker(ctx context.Context, workerID int64, limit, offset int) ([]domain.Request, int64, error) {
	return s.requests.ListByWorker(ctx, workerID, limit, offset)
}

// UpdateDescription edits the non-status fields. Only the request's client
// or the assigned worker may edit; status is untouched.
func (s *Service) UpdateDescription(ctx context.Context, id int64, p domain.Principal, description string) (*domain.Request, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrValidation
	}

	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := r.ClientID == p.UserID
	if !allowed {
		allowed, err = s.isAssignedWorker(ctx, r, p)
		if err != nil {
			return nil, err
		}
	}
	if !allowed {
		return nil, ErrForbidden
	}

	return s.requests.UpdateDescription(ctx, id, description)
}

// UpdateStatus moves a request through the lifecycle state machine.
//
// Role rules: a client may only cancel their own request; a worker may only
// accept, reject or complete a request assigned to them; an admin is exempt
// from ownership and target-status restrictions. The transition legality
// table applies to every role, so terminal states stay terminal even for
// admins.
func (s *Service) UpdateStatus(ctx context.Context, id int64, p domain.Principal, to domain.RequestStatus, rejectedReason *string) (*domain.Request, error) {
	if !domain.ValidRequestStatus(to) {
		return nil, ErrValidation
	}
	if to == domain.RequestRejected && (rejectedReason == nil || strings.TrimSpace(*rejectedReason) == "") {
		return nil, ErrValidation
	}

	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeStatusUpdate(ctx, r, p, to); err != nil {
		return nil, err
	}

	if !domain.CanTransition(r.Status, to) {
		return nil, &TransitionError{From: r.Status, To: to}
	}

	updated, err := s.requests.Transition(ctx, id, to, rejectedReason)
	if err != nil {
		if errors.Is(err, repository.ErrIllegalTransition) {
			// Another transition won the race between our check and the
			// transactional re-check.
			current, gerr := s.Get(ctx, id)
			if gerr != nil {
				return nil, gerr
			}
			return nil, &TransitionError{From: current.Status, To: to}
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *Service) authorizeStatusUpdate(ctx context.Context, r *domain.Request, p domain.Principal, to domain.RequestStatus) error {
	switch p.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleClient:
		if r.ClientID != p.UserID {
			return ErrForbidden
		}
		if to != domain.RequestCancelled {
			return ErrForbidden
		}
		return nil
	case domain.RoleWorker:
		assigned, err := s.isAssignedWorker(ctx, r, p)
		if err != nil {
			return err
		}
		if !assigned {
			return ErrForbidden
		}
		switch to {
		case domain.RequestAccepted, domain.RequestRejected, domain.RequestCompleted:
			return nil
		}
		return ErrForbidden
	}
	return ErrForbidden
}

func (s *Service) isAssignedWorker(ctx context.Context, r *domain.Request, p domain.Principal) (bool, error) {
	if p.Role != domain.RoleWorker {
		return false, nil
	}
	w, err := s.workers.GetByUserID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return w.ID == r.WorkerID, nil
}

// Delete removes a request unconditionally. The transport layer gates this
// behind the client and admin roles.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
