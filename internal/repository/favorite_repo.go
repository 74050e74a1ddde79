package repository

import (
	"context"

	"gorm.io/gorm"

	"craftmosul/internal/domain"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FavoriteRepository) GetByID(ctx context.Context, id int64) (*domain.Favorite, error) {
	var f domain.Favorite
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Preload("Worker.User").
		Preload("Worker.Profession").
		First(&f, id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FavoriteRepository) GetByClientAndWorker(ctx context.Context, clientID, workerID int64) (*domain.Favorite, error) {
	var f domain.Favorite
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Preload("Worker.User").
		Preload("Worker.Profession").
		Where("client_id = ? AND worker_id = ?", clientID, workerID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FavoriteRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("client_id = ?", clientID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var favorites []domain.Favorite
	query := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Preload("Worker").
		Preload("Worker.User").
		Preload("Worker.Profession").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&favorites).Error; err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Favorite{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FavoriteRepository) DeleteByClientAndWorker(ctx context.Context, clientID, workerID int64) error {
	result := r.db.WithContext(ctx).
		Where("client_id = ? AND worker_id = ?", clientID, workerID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
