package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"craftmosul/internal/domain"
)

type ProfessionRepository struct {
	db *gorm.DB
}

func NewProfessionRepository(db *gorm.DB) *ProfessionRepository {
	return &ProfessionRepository{db: db}
}

func (r *ProfessionRepository) Create(ctx context.Context, p *domain.Profession) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfessionRepository) GetByID(ctx context.Context, id int64) (*domain.Profession, error) {
	var p domain.Profession
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfessionRepository) List(ctx context.Context) ([]domain.Profession, error) {
	var professions []domain.Profession
	err := r.db.WithContext(ctx).Order("name ASC").Find(&professions).Error
	return professions, err
}

func (r *ProfessionRepository) Update(ctx context.Context, id int64, updates map[string]any) (*domain.Profession, error) {
	updates["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&domain.Profession{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ProfessionRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Profession{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
