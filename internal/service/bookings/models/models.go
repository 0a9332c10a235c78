package models

import (
	"time"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение бронирований за период
// Без периода возвращаются все бронирования
type ListBookingsRequest struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	SlotID    *int64     `json:"slotId,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	return domain.BookingsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		SlotID:    r.SlotID,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64     `json:"id"`
	BookingDate string    `json:"bookingDate"` // "2025-10-15"
	Day         string    `json:"day"`         // "Wednesday"
	SlotID      int64     `json:"slotId"`
	SlotName    string    `json:"slotName,omitempty"`
	SlotTime    string    `json:"slotTime,omitempty"`
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone"`
	ClientEmail *string   `json:"clientEmail,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookingListResponse список бронирований со статистикой для панели тренера
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"` // все бронирования
	Today    int               `json:"today"` // бронирования на сегодня
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
// slot может быть nil, если слот не найден в каталоге
func FromDomainBooking(booking *domain.Booking, slot *domain.Slot) *BookingResponse {
	resp := &BookingResponse{
		ID:          booking.ID,
		BookingDate: booking.BookingDate.Format(domain.DateFormat),
		Day:         booking.BookingDate.Weekday().String(),
		SlotID:      booking.SlotID,
		ClientName:  booking.ClientName,
		ClientPhone: booking.ClientPhone,
		ClientEmail: booking.ClientEmail,
		CreatedAt:   booking.CreatedAt,
	}
	if slot != nil {
		resp.SlotName = slot.Name
		resp.SlotTime = slot.TimeRange()
	}
	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking, slots map[int64]*domain.Slot) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, *FromDomainBooking(b, slots[b.SlotID]))
	}
	return out
}
