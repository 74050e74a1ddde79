package domain

import "time"

// Neighborhood is a district of Mosul used to localize worker profiles.
type Neighborhood struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	NameAr    string    `json:"name_ar,omitempty"`
	Side      string    `json:"side,omitempty" gorm:"type:varchar(10)"` // left or right bank of the Tigris
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Neighborhood) TableName() string { return "neighborhoods" }
