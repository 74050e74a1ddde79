package repository

import (
	"context"

	"gorm.io/gorm"

	"craftmosul/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) DB() *gorm.DB { return r.db }

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Worker").
		First(&rv, id).Error
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) ExistsForRequest(ctx context.Context, requestID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("request_id = ?", requestID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) List(ctx context.Context, limit, offset int) ([]domain.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Review{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []domain.Review
	query := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Worker").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepository) ListByWorker(ctx context.Context, workerID int64, limit, offset int) ([]domain.Review, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("worker_id = ?", workerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var reviews []domain.Review
	query := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Preload("Client").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}
