package export

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

type ExportService interface {
	WriteBookingsCSV(ctx context.Context, w io.Writer, filter domain.BookingsFilter) (int, error)
	WriteBookingsICS(ctx context.Context, w io.Writer, filter domain.BookingsFilter) (int, error)
	WriteClientsCSV(ctx context.Context, w io.Writer) (int, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider для production
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
