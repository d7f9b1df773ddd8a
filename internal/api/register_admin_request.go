package api

// swagger:model api.RegisterAdminRequest
type RegisterAdminRequest struct {
	Name     string `json:"name" validate:"required" example:"Root"`
	Email    string `json:"email" validate:"required,email" example:"root@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"Secret123!"`
	Secret   string `json:"secret" validate:"required" example:"bootstrap-secret"`
}
