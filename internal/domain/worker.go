package domain

import "time"

// Worker is a service provider's public profile. One row per worker user.
// TotalJobs and AverageRating are derived values owned by the review
// aggregator; nothing else writes them.
type Worker struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	UserID          int64     `json:"user_id" gorm:"uniqueIndex;not null"`
	ProfessionID    int64     `json:"profession_id" gorm:"not null;index"`
	NeighborhoodID  *int64    `json:"neighborhood_id,omitempty" gorm:"index"`
	Bio             string    `json:"bio,omitempty" gorm:"type:text"`
	ExperienceYears int       `json:"experience_years"`
	ContactPhone    string    `json:"contact_phone,omitempty"`
	ContactAddress  string    `json:"contact_address,omitempty" gorm:"type:text"`
	IsAvailable     bool      `json:"is_available" gorm:"default:true"`
	TotalJobs       int64     `json:"total_jobs" gorm:"default:0"`
	AverageRating   float64   `json:"average_rating" gorm:"type:decimal(3,2);default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User         *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Profession   *Profession   `json:"profession,omitempty" gorm:"foreignKey:ProfessionID"`
	Neighborhood *Neighborhood `json:"neighborhood,omitempty" gorm:"foreignKey:NeighborhoodID"`
}

func (Worker) TableName() string { return "workers" }
