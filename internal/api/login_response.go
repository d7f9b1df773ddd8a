package api

// swagger:model api.LoginResponse
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type" example:"Bearer"`
	ExpiresIn   int          `json:"expires_in" example:"86400"`
	User        UserResponse `json:"user"`
}
