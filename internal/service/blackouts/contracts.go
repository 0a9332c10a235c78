package blackouts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// BlackoutRepository интерфейс репозитория блокировок
type BlackoutRepository interface {
	Create(ctx context.Context, blackout *domain.Blackout) (*domain.Blackout, error)
	List(ctx context.Context) ([]*domain.Blackout, error)
	ListFrom(ctx context.Context, from time.Time) ([]*domain.Blackout, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Blackout, error)
	Delete(ctx context.Context, id int64) error
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
