package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type LoginResponse struct {
	Token       string `json:"token"`
	Name        string `json:"name"`
	AccessLevel string `json:"access_level"`
	ExpiresAt   string `json:"expires_at"`
}
