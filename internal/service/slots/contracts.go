package slots

import (
	"context"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Slot, error)
	Update(ctx context.Context, id int64, update domain.SlotUpdate) (*domain.Slot, error)
	UpdateSortOrder(ctx context.Context, id int64, sortOrder int) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
