package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountForSlot(ctx context.Context, date time.Time, slotID int64) (int, error)
}

// SlotRepository интерфейс репозитория слотов
// GetByID внутри транзакции блокирует строку слота (FOR UPDATE)
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// BlackoutRepository интерфейс репозитория блокировок
type BlackoutRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Blackout, error)
}

// ClientRepository интерфейс реестра клиентов (проверка абонемента)
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier очередь подтверждений; Enqueue не блокирует
type Notifier interface {
	Enqueue(n *domain.BookingNotification) bool
}

// Metrics учёт исходов бронирования
type Metrics interface {
	ObserveAdmission(outcome string)
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
