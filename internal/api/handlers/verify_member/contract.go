package verify_member

import (
	"context"

	authModels "github.com/m04kA/SMC-GymBooking/internal/service/auth/models"
	"github.com/m04kA/SMC-GymBooking/internal/service/clients/models"
)

type ClientService interface {
	VerifyByPhone(ctx context.Context, phone string) (*models.VerifyResponse, error)
}

type TokenIssuer interface {
	IssueMemberToken(clientID int64) (*authModels.TokenResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
