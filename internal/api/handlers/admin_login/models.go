package admin_login

// LoginRequest HTTP request model
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}
