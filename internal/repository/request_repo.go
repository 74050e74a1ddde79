package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"craftmosul/internal/domain"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	var req domain.Request
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Worker").
		Preload("Worker.User").
		Preload("Worker.Profession").
		Preload("Worker.Neighborhood").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) List(ctx context.Context, limit, offset int) ([]domain.Request, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx), limit, offset)
}

func (r *RequestRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Request, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("client_id = ?", clientID), limit, offset)
}

func (r *RequestRepository) ListByWorker(ctx context.Context, workerID int64, limit, offset int) ([]domain.Request, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("worker_id = ?", workerID), limit, offset)
}

func (r *RequestRepository) list(ctx context.Context, query *gorm.DB, limit, offset int) ([]domain.Request, int64, error) {
	var total int64
	if err := query.Model(&domain.Request{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []domain.Request
	query = query.
		Preload("Client").
		Preload("Worker").
		Preload("Worker.User").
		Preload("Worker.Profession").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateDescription edits the non-status fields of a request.
func (r *RequestRepository) UpdateDescription(ctx context.Context, id int64, description string) (*domain.Request, error) {
	result := r.db.WithContext(ctx).Model(&domain.Request{}).Where("id = ?", id).Updates(map[string]any{
		"problem_description": description,
		"updated_at":          time.Now(),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Transition moves a request to a new status. The row is re-read under a
// write lock inside the transaction and the legality table re-checked
// against it, so two concurrent transitions cannot both pass the check on
// the same stale snapshot.
func (r *RequestRepository) Transition(ctx context.Context, id int64, to domain.RequestStatus, rejectedReason *string) (*domain.Request, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := tx
		// SQLite serializes writers on its own and rejects FOR UPDATE.
		if tx.Dialector.Name() == "postgres" {
			row = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var req domain.Request
		if err := row.First(&req, id).Error; err != nil {
			return err
		}

		if !domain.CanTransition(req.Status, to) {
			return ErrIllegalTransition
		}

		updates := map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		}
		if rejectedReason != nil {
			updates["rejected_reason"] = *rejectedReason
		}
		if to == domain.RequestCompleted {
			updates["completed_at"] = time.Now()
		}

		return tx.Model(&domain.Request{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *RequestRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Request{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
