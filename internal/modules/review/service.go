package review

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"craftmosul/internal/domain"
	"craftmosul/internal/repository"
)

// RequestGate is the slice of the request lifecycle the aggregator needs:
// reviews may only target completed requests owned by the reviewer.
type RequestGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
}

type Service struct {
	reviews  *repository.ReviewRepository
	requests RequestGate
}

func NewService(reviews *repository.ReviewRepository, requests RequestGate) *Service {
	return &Service{reviews: reviews, requests: requests}
}

// Create inserts a review for a completed request. The worker and client
// references are copied from the request, never taken from caller input.
// The insert and the worker aggregate recompute run in one transaction.
func (s *Service) Create(ctx context.Context, clientID int64, req CreateReviewRequest) (*domain.Review, error) {
	if clientID <= 0 || req.RequestID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	r, err := s.requests.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if r.Status != domain.RequestCompleted {
		return nil, ErrRequestNotCompleted
	}
	if r.ClientID != clientID {
		return nil, ErrForbidden
	}

	exists, err := s.reviews.ExistsForRequest(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	rv := &domain.Review{
		RequestID: req.RequestID,
		WorkerID:  r.WorkerID,
		ClientID:  r.ClientID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	err = s.reviews.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rv).Error; err != nil {
			return err
		}
		return repository.RecomputeStats(tx, rv.WorkerID)
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.reviews.GetByID(ctx, rv.ID)
}

// Update modifies a review. Only the owning client or an admin may do so.
// A rating change re-runs the worker aggregate recompute in the same
// transaction as the update.
func (s *Service) Update(ctx context.Context, id int64, p domain.Principal, req UpdateReviewRequest) (*domain.Review, error) {
	rv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if rv.ClientID != p.UserID && !p.IsAdmin() {
		return nil, ErrForbidden
	}

	updates := map[string]any{"updated_at": time.Now()}
	ratingChanged := false
	if req.Rating != nil && *req.Rating != rv.Rating {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrValidation
		}
		updates["rating"] = *req.Rating
		ratingChanged = true
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}

	err = s.reviews.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Review{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if ratingChanged {
			return repository.RecomputeStats(tx, rv.WorkerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reviews.GetByID(ctx, id)
}

// Delete removes a review and recomputes the worker's aggregate over the
// remaining reviews, in one transaction.
func (s *Service) Delete(ctx context.Context, id int64, p domain.Principal) error {
	rv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if rv.ClientID != p.UserID && !p.IsAdmin() {
		return ErrForbidden
	}

	return s.reviews.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Review{}, id).Error; err != nil {
			return err
		}
		return repository.RecomputeStats(tx, rv.WorkerID)
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Review, int64, error) {
	return s.reviews.List(ctx, limit, offset)
}

func (s *Service) ListByWorker(ctx context.Context, workerID int64, limit, offset int) ([]domain.Review, int64, error) {
	if workerID <= 0 {
		return nil, 0, ErrValidation
	}
	return s.reviews.ListByWorker(ctx, workerID, limit, offset)
}
