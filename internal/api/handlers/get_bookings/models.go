package get_bookings

import (
	"net/url"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GymBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Параметр date задаёт один день и имеет приоритет над from/to
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	date, err := handlers.ParseOptionalDate(query.Get("date"))
	if err != nil {
		return nil, err
	}
	if date != nil {
		req.StartDate = date
		req.EndDate = date
	} else {
		if req.StartDate, err = handlers.ParseOptionalDate(query.Get("from")); err != nil {
			return nil, err
		}
		if req.EndDate, err = handlers.ParseOptionalDate(query.Get("to")); err != nil {
			return nil, err
		}
	}

	if req.SlotID, err = handlers.ParseOptionalID(query.Get("slotId")); err != nil {
		return nil, err
	}

	return req, nil
}
