package manage_clients

import (
	"context"

	"github.com/m04kA/SMC-GymBooking/internal/service/clients/models"
)

type ClientService interface {
	Create(ctx context.Context, req *models.CreateClientRequest) (*models.ClientResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ClientResponse, error)
	List(ctx context.Context) (*models.ClientListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateClientRequest) (*models.ClientResponse, error)
	Renew(ctx context.Context, id int64, req *models.RenewRequest) (*models.ClientResponse, error)
	Delete(ctx context.Context, id int64) error
	BookingHistory(ctx context.Context, id int64) (*models.HistoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
