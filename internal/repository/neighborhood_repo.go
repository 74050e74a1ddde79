package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"craftmosul/internal/domain"
)

type NeighborhoodRepository struct {
	db *gorm.DB
}

func NewNeighborhoodRepository(db *gorm.DB) *NeighborhoodRepository {
	return &NeighborhoodRepository{db: db}
}

func (r *NeighborhoodRepository) Create(ctx context.Context, n *domain.Neighborhood) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NeighborhoodRepository) GetByID(ctx context.Context, id int64) (*domain.Neighborhood, error) {
	var n domain.Neighborhood
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NeighborhoodRepository) List(ctx context.Context) ([]domain.Neighborhood, error) {
	var neighborhoods []domain.Neighborhood
	err := r.db.WithContext(ctx).Order("name ASC").Find(&neighborhoods).Error
	return neighborhoods, err
}

func (r *NeighborhoodRepository) Update(ctx context.Context, id int64, updates map[string]any) (*domain.Neighborhood, error) {
	updates["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&domain.Neighborhood{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *NeighborhoodRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Neighborhood{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
