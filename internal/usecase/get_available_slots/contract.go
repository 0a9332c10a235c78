package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CountBySlot количество бронирований на дату по каждому слоту
	CountBySlot(ctx context.Context, date time.Time) (map[int64]int, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Slot, error)
}

// BlackoutRepository интерфейс репозитория блокировок
type BlackoutRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Blackout, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
