package verify_member

import (
	authModels "github.com/m04kA/SMC-GymBooking/internal/service/auth/models"
	"github.com/m04kA/SMC-GymBooking/internal/service/clients/models"
)

// VerifyRequest HTTP request model
type VerifyRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// VerifyResponse результат проверки, сессия выдаётся только при действующем абонементе
type VerifyResponse struct {
	*models.VerifyResponse
	Session *authModels.TokenResponse `json:"session,omitempty"`
}
