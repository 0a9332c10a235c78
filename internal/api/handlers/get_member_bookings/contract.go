package get_member_bookings

import (
	"context"

	"github.com/m04kA/SMC-GymBooking/internal/service/clients/models"
)

type ClientService interface {
	BookingHistory(ctx context.Context, id int64) (*models.HistoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
