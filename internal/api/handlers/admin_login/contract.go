package admin_login

import (
	"github.com/m04kA/SMC-GymBooking/internal/service/auth/models"
)

type AuthService interface {
	Login(password string) (*models.TokenResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
