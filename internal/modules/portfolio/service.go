package portfolio

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"craftmosul/internal/domain"
	"craftmosul/internal/repository"
)

type WorkerGate interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Worker, error)
}

type Service struct {
	items   *repository.PortfolioRepository
	workers WorkerGate
}

func NewService(items *repository.PortfolioRepository, workers WorkerGate) *Service {
	return &Service{items: items, workers: workers}
}

type CreateItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type UpdateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// Create adds a work sample to the calling worker's own profile.
func (s *Service) Create(ctx context.Context, p domain.Principal, req CreateItemRequest) (*domain.PortfolioItem, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrValidation
	}

	w, err := s.workers.GetByUserID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}

	item := &domain.PortfolioItem{
		WorkerID:    w.ID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) ListByWorker(ctx context.Context, workerID int64) ([]domain.PortfolioItem, error) {
	if workerID <= 0 {
		return nil, ErrValidation
	}
	return s.items.ListByWorker(ctx, workerID)
}

func (s *Service) Update(ctx context.Context, id int64, p domain.Principal, req UpdateItemRequest) (*domain.PortfolioItem, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, item, p); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	updated, err := s.items.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64, p domain.Principal) error {
	item, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, item, p); err != nil {
		return err
	}

	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.PortfolioItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *Service) authorize(ctx context.Context, item *domain.PortfolioItem, p domain.Principal) error {
	if p.IsAdmin() {
		return nil
	}

	w, err := s.workers.GetByUserID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}
	if w.ID != item.WorkerID {
		return ErrForbidden
	}
	return nil
}
