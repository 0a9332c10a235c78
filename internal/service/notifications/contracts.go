package notifications

import (
	"context"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// Sender доставляет подтверждение бронирования
type Sender interface {
	SendBookingConfirmation(ctx context.Context, n *domain.BookingNotification) error
}

// Metrics учёт результатов отправки
type Metrics interface {
	ObserveNotification(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
