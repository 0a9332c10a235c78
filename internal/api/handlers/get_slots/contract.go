package get_slots

import (
	"context"

	"github.com/m04kA/SMC-GymBooking/internal/service/slots/models"
)

type SlotService interface {
	ListActive(ctx context.Context) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
