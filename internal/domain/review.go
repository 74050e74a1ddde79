package domain

import "time"

// Review is tied one-to-one to a completed request. WorkerID and ClientID
// are copied from the request at creation time, never taken from input.
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	RequestID int64     `json:"request_id" gorm:"uniqueIndex;not null"`
	WorkerID  int64     `json:"worker_id" gorm:"not null;index"`
	ClientID  int64     `json:"client_id" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   *string   `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Request *Request `json:"request,omitempty" gorm:"foreignKey:RequestID"`
	Worker  *Worker  `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	Client  *User    `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

func (Review) TableName() string { return "reviews" }
