package worker

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"craftmosul/internal/domain"
	"craftmosul/internal/repository"
)

type Service struct {
	workers *repository.WorkerRepository
}

func NewService(workers *repository.WorkerRepository) *Service {
	return &Service{workers: workers}
}

func (s *Service) List(ctx context.Context, f repository.WorkerFilter, limit, offset int) ([]domain.Worker, int64, error) {
	return s.workers.List(ctx, f, limit, offset)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Worker, error) {
	w, err := s.workers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *Service) GetByUser(ctx context.Context, userID int64) (*domain.Worker, error) {
	w, err := s.workers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

// Update edits a worker's own profile fields. Only the owning worker or an
// admin may edit. TotalJobs and AverageRating are never touched here;
// the review aggregator owns them.
func (s *Service) Update(ctx context.Context, id int64, p domain.Principal, req UpdateWorkerRequest) (*domain.Worker, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if w.UserID != p.UserID && !p.IsAdmin() {
		return nil, ErrForbidden
	}

	updates := map[string]any{}
	if req.ProfessionID != nil && *req.ProfessionID > 0 {
		updates["profession_id"] = *req.ProfessionID
	}
	if req.NeighborhoodID != nil {
		updates["neighborhood_id"] = *req.NeighborhoodID
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.ExperienceYears != nil {
		if *req.ExperienceYears < 0 {
			return nil, ErrValidation
		}
		updates["experience_years"] = *req.ExperienceYears
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.ContactAddress != nil {
		updates["contact_address"] = *req.ContactAddress
	}

	updated, err := s.workers.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// SetAvailability flips the worker's is_available flag. Owner only.
func (s *Service) SetAvailability(ctx context.Context, id int64, p domain.Principal, available bool) (*domain.Worker, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if w.UserID != p.UserID {
		return nil, ErrForbidden
	}

	updated, err := s.workers.Update(ctx, id, map[string]any{"is_available": available})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a worker profile. Admin action; nothing cascades, so
// orphaned requests and reviews are accepted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.workers.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
