package domain

import "time"

// Booking represents a client's reservation of one slot on one date
type Booking struct {
	ID          int64
	BookingDate time.Time
	SlotID      int64
	ClientName  string
	ClientPhone string
	ClientEmail *string
	CancelToken string
	CreatedAt   time.Time
}

// HasEmail returns true if a confirmation can be sent for the booking
func (b *Booking) HasEmail() bool {
	return b.ClientEmail != nil && *b.ClientEmail != ""
}

// IsPast returns true if the booking date is before today
func (b *Booking) IsPast(now time.Time) bool {
	return DateOnly(b.BookingDate).Before(DateOnly(now))
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate *time.Time // Начало периода (включительно, опционально)
	EndDate   *time.Time // Конец периода (включительно, опционально)
	SlotID    *int64     // Фильтр по слоту (опционально)
}

// BookingNotification is the payload of a booking confirmation
type BookingNotification struct {
	BookingID   int64
	ClientName  string
	ClientEmail string
	ClientPhone string
	Date        time.Time
	SlotName    string
	SlotTime    string
	CancelToken string
	SiteURL     string
}

// CancelURL builds the self-service cancellation link
func (n *BookingNotification) CancelURL() string {
	return n.SiteURL + "/cancel/" + n.CancelToken
}
