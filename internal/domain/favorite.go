package domain

import "time"

// Favorite links a client to a worker they bookmarked. At most one row per
// (client, worker) pair, enforced by the composite unique index.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ClientID  int64     `json:"client_id" gorm:"not null;index;uniqueIndex:idx_client_worker"`
	WorkerID  int64     `json:"worker_id" gorm:"not null;index;uniqueIndex:idx_client_worker"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client *User   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Worker *Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

func (Favorite) TableName() string { return "favorites" }
