package favorite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"craftmosul/internal/domain"
	"craftmosul/internal/repository"
)

type WorkerGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
}

type Service struct {
	favorites *repository.FavoriteRepository
	workers   WorkerGate
}

func NewService(favorites *repository.FavoriteRepository, workers WorkerGate) *Service {
	return &Service{favorites: favorites, workers: workers}
}

// Add bookmarks a worker for a client, idempotently: a repeat add returns
// the existing row. A unique-constraint failure on insert means a
// concurrent duplicate add won the race, so we degrade to returning the
// winner's row instead of propagating the error.
func (s *Service) Add(ctx context.Context, clientID, workerID int64) (*domain.Favorite, error) {
	if clientID <= 0 || workerID <= 0 {
		return nil, ErrValidation
	}

	if _, err := s.workers.GetByID(ctx, workerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}

	existing, err := s.favorites.GetByClientAndWorker(ctx, clientID, workerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	f := &domain.Favorite{ClientID: clientID, WorkerID: workerID}
	if err := s.favorites.Create(ctx, f); err != nil {
		if repository.IsUniqueViolation(err) {
			return s.favorites.GetByClientAndWorker(ctx, clientID, workerID)
		}
		return nil, err
	}

	return s.favorites.GetByID(ctx, f.ID)
}

func (s *Service) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	if clientID <= 0 {
		return nil, 0, ErrValidation
	}
	return s.favorites.ListByClient(ctx, clientID, limit, offset)
}

// RemoveByClientAndWorker deletes a bookmark. A client principal may only
// remove their own; admins are unrestricted.
func (s *Service) RemoveByClientAndWorker(ctx context.Context, clientID, workerID int64, p domain.Principal) error {
	if clientID <= 0 || workerID <= 0 {
		return ErrValidation
	}
	if !p.IsAdmin() && clientID != p.UserID {
		return ErrForbidden
	}

	if err := s.favorites.DeleteByClientAndWorker(ctx, clientID, workerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Remove deletes a bookmark by id with the same ownership rule.
func (s *Service) Remove(ctx context.Context, id int64, p domain.Principal) error {
	f, err := s.favorites.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !p.IsAdmin() && f.ClientID != p.UserID {
		return ErrForbidden
	}

	if err := s.favorites.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
