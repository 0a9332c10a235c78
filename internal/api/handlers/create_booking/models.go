package create_booking

import (
	"github.com/m04kA/SMC-GymBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-GymBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model публичной формы
type CreateBookingRequest struct {
	Date        string  `json:"date" validate:"required"` // "2025-10-15"
	SlotID      int64   `json:"slotId" validate:"required,gt=0"`
	ClientName  string  `json:"clientName" validate:"required"`
	ClientPhone string  `json:"clientPhone" validate:"required"`
	ClientEmail *string `json:"clientEmail,omitempty"`
}

// MemberBookingRequest HTTP request model кабинета участника
// Контакты берутся из карточки клиента
type MemberBookingRequest struct {
	Date   string `json:"date" validate:"required"`
	SlotID int64  `json:"slotId" validate:"required,gt=0"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Date:        date,
		SlotID:      r.SlotID,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
	}, nil
}

func (r *MemberBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Date:     date,
		SlotID:   r.SlotID,
		ClientID: &clientID,
	}, nil
}
