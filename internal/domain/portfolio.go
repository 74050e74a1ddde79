package domain

import "time"

// PortfolioItem is a work sample shown on a worker's profile.
type PortfolioItem struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	WorkerID    int64     `json:"worker_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Worker *Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

func (PortfolioItem) TableName() string { return "portfolio_items" }
