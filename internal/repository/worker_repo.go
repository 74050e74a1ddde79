package repository

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"craftmosul/internal/domain"
)

type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

// WorkerFilter narrows List results. Zero values mean "no filter".
type WorkerFilter struct {
	ProfessionID   int64
	NeighborhoodID int64
	AvailableOnly  bool
}

func (r *WorkerRepository) Create(ctx context.Context, w *domain.Worker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WorkerRepository) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	var w domain.Worker
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Profession").
		Preload("Neighborhood").
		First(&w, id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Worker, error) {
	var w domain.Worker
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Profession").
		Preload("Neighborhood").
		Where("user_id = ?", userID).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkerRepository) List(ctx context.Context, f WorkerFilter, limit, offset int) ([]domain.Worker, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Worker{})
	if f.ProfessionID > 0 {
		query = query.Where("profession_id = ?", f.ProfessionID)
	}
	if f.NeighborhoodID > 0 {
		query = query.Where("neighborhood_id = ?", f.NeighborhoodID)
	}
	if f.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var workers []domain.Worker
	query = query.
		Preload("User").
		Preload("Profession").
		Preload("Neighborhood").
		Order("average_rating DESC, total_jobs DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&workers).Error; err != nil {
		return nil, 0, err
	}
	return workers, total, nil
}

func (r *WorkerRepository) Update(ctx context.Context, id int64, updates map[string]any) (*domain.Worker, error) {
	updates["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&domain.Worker{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *WorkerRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Worker{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecomputeStats rescans a worker's reviews and persists the derived
// aggregate onto the worker row. Runs against tx so callers can make it
// atomic with the review mutation that triggered it.
func RecomputeStats(tx *gorm.DB, workerID int64) error {
	var agg struct {
		AverageRating float64
		TotalJobs     int64
	}
	err := tx.Raw(`
		SELECT
			COALESCE(AVG(CAST(rating AS DECIMAL(3,2))), 0) AS average_rating,
			COUNT(*) AS total_jobs
		FROM reviews
		WHERE worker_id = ?
	`, workerID).Scan(&agg).Error
	if err != nil {
		return err
	}

	return tx.Model(&domain.Worker{}).Where("id = ?", workerID).Updates(map[string]any{
		"average_rating": math.Round(agg.AverageRating*100) / 100,
		"total_jobs":     agg.TotalJobs,
		"updated_at":     time.Now(),
	}).Error
}
