package manage_slots

import (
	"context"

	"github.com/m04kA/SMC-GymBooking/internal/service/slots/models"
)

type SlotService interface {
	ListAll(ctx context.Context) (*models.SlotListResponse, error)
	Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error)
	SetActive(ctx context.Context, id int64, active bool) (*models.SlotResponse, error)
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, ids []int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
