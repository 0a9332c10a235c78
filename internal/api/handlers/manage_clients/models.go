package manage_clients

import (
	"time"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GymBooking/internal/service/clients/models"
)

// CreateClientRequest HTTP request model
type CreateClientRequest struct {
	Name      string  `json:"name" validate:"required"`
	Phone     string  `json:"phone" validate:"required"`
	Email     *string `json:"email,omitempty"`
	PlanType  string  `json:"planType" validate:"required"`
	StartDate *string `json:"startDate,omitempty"` // "2025-10-15", по умолчанию сегодня
	Notes     *string `json:"notes,omitempty"`
}

// UpdateClientRequest HTTP request model, передаются только изменяемые поля
type UpdateClientRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	PlanType  *string `json:"planType,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// RenewRequest HTTP request model
type RenewRequest struct {
	PlanType  string  `json:"planType" validate:"required"`
	StartDate *string `json:"startDate,omitempty"`
}

func (r *CreateClientRequest) ToServiceRequest() (*models.CreateClientRequest, error) {
	start, err := parseStart(r.StartDate)
	if err != nil {
		return nil, err
	}

	return &models.CreateClientRequest{
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		PlanType:  r.PlanType,
		StartDate: start,
		Notes:     r.Notes,
	}, nil
}

func (r *UpdateClientRequest) ToServiceRequest() (*models.UpdateClientRequest, error) {
	start, err := parseStart(r.StartDate)
	if err != nil {
		return nil, err
	}

	return &models.UpdateClientRequest{
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		PlanType:  r.PlanType,
		StartDate: start,
		Notes:     r.Notes,
	}, nil
}

func (r *RenewRequest) ToServiceRequest() (*models.RenewRequest, error) {
	start, err := parseStart(r.StartDate)
	if err != nil {
		return nil, err
	}

	return &models.RenewRequest{
		PlanType:  r.PlanType,
		StartDate: start,
	}, nil
}

func parseStart(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	return handlers.ParseOptionalDate(*raw)
}
