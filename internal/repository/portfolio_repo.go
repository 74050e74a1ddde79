package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"craftmosul/internal/domain"
)

type PortfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

func (r *PortfolioRepository) Create(ctx context.Context, item *domain.PortfolioItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PortfolioRepository) GetByID(ctx context.Context, id int64) (*domain.PortfolioItem, error) {
	var item domain.PortfolioItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PortfolioRepository) ListByWorker(ctx context.Context, workerID int64) ([]domain.PortfolioItem, error) {
	var items []domain.PortfolioItem
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *PortfolioRepository) Update(ctx context.Context, id int64, updates map[string]any) (*domain.PortfolioItem, error) {
	updates["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&domain.PortfolioItem{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PortfolioRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.PortfolioItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
