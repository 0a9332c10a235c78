package manage_blackouts

import (
	"github.com/m04kA/SMC-GymBooking/internal/domain"
	"github.com/m04kA/SMC-GymBooking/internal/service/blackouts/models"
)

// CreateBlackoutRequest HTTP request model
// Без slotId блокируется весь день
type CreateBlackoutRequest struct {
	Date   string  `json:"date" validate:"required"`
	SlotID *int64  `json:"slotId,omitempty" validate:"omitempty,gt=0"`
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlackoutRequest) ToServiceRequest() (*models.CreateBlackoutRequest, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateBlackoutRequest{
		Date:   date,
		SlotID: r.SlotID,
		Reason: r.Reason,
	}, nil
}
