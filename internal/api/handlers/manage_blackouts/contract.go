package manage_blackouts

import (
	"context"

	"github.com/m04kA/SMC-GymBooking/internal/service/blackouts/models"
)

type BlackoutService interface {
	Create(ctx context.Context, req *models.CreateBlackoutRequest) (*models.BlackoutResponse, error)
	List(ctx context.Context, upcomingOnly bool) (*models.BlackoutListResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
