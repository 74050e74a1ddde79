package auth

type RegisterClientRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type RegisterWorkerRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone"`
	ProfessionID    int64  `json:"profession_id" binding:"required"`
	NeighborhoodID  *int64 `json:"neighborhood_id"`
	Bio             string `json:"bio"`
	ExperienceYears int    `json:"experience_years"`
	ContactPhone    string `json:"contact_phone"`
	ContactAddress  string `json:"contact_address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}
