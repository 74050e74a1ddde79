package worker

type UpdateWorkerRequest struct {
	ProfessionID    *int64  `json:"profession_id"`
	NeighborhoodID  *int64  `json:"neighborhood_id"`
	Bio             *string `json:"bio"`
	ExperienceYears *int    `json:"experience_years"`
	ContactPhone    *string `json:"contact_phone"`
	ContactAddress  *string `json:"contact_address"`
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}
