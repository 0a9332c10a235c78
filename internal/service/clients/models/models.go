package models

import (
	"time"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// Request модели

// CreateClientRequest запрос на создание клиента
type CreateClientRequest struct {
	Name      string
	Phone     string
	Email     *string
	PlanType  string
	StartDate *time.Time // по умолчанию сегодня
	Notes     *string
}

// UpdateClientRequest частичное обновление клиента
// Дата окончания пересчитывается при смене тарифа или даты начала
type UpdateClientRequest struct {
	Name      *string
	Phone     *string
	Email     *string
	PlanType  *string
	StartDate *time.Time
	Notes     *string
}

// RenewRequest продление абонемента
type RenewRequest struct {
	PlanType  string
	StartDate *time.Time // по умолчанию сегодня
}

// Response модели

// ClientResponse ответ с данными клиента и вычисленным статусом абонемента
type ClientResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         *string   `json:"email,omitempty"`
	PlanType      string    `json:"planType"`
	PlanLabel     string    `json:"planLabel"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	Notes         *string   `json:"notes,omitempty"`
	Status        string    `json:"status"` // active | expiring | expired
	DaysRemaining int       `json:"daysRemaining"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ClientListResponse список клиентов со сводкой по статусам
type ClientListResponse struct {
	Clients  []ClientResponse `json:"clients"`
	Active   int              `json:"active"`
	Expiring int              `json:"expiring"`
	Expired  int              `json:"expired"`
}

// VerifyOutcome результат проверки клиента по телефону
type VerifyOutcome string

const (
	VerifyVerified VerifyOutcome = "verified"
	VerifyExpired  VerifyOutcome = "expired"
)

// VerifyResponse результат проверки по телефону
// Телефон идентифицирует клиента, но не аутентифицирует его
type VerifyResponse struct {
	Outcome        VerifyOutcome  `json:"outcome"`
	Client         ClientResponse `json:"client"`
	ExpiredDaysAgo int            `json:"expiredDaysAgo,omitempty"`
}

// HistoryBooking запись в истории посещений клиента
type HistoryBooking struct {
	ID          int64  `json:"id"`
	BookingDate string `json:"bookingDate"`
	SlotID      int64  `json:"slotId"`
	SlotName    string `json:"slotName,omitempty"`
	SlotTime    string `json:"slotTime,omitempty"`
}

// HistoryResponse история бронирований клиента
// Upcoming по возрастанию даты, Past - сначала последние
type HistoryResponse struct {
	Client   ClientResponse   `json:"client"`
	Upcoming []HistoryBooking `json:"upcoming"`
	Past     []HistoryBooking `json:"past"`
}

// FromDomainClient конвертирует domain.Client в ClientResponse на момент now
func FromDomainClient(client *domain.Client, now time.Time) *ClientResponse {
	return &ClientResponse{
		ID:            client.ID,
		Name:          client.Name,
		Phone:         client.Phone,
		Email:         client.Email,
		PlanType:      string(client.PlanType),
		PlanLabel:     client.PlanType.Label(),
		StartDate:     client.StartDate.Format(domain.DateFormat),
		EndDate:       client.EndDate.Format(domain.DateFormat),
		Notes:         client.Notes,
		Status:        string(client.Status(now)),
		DaysRemaining: client.DaysRemaining(now),
		CreatedAt:     client.CreatedAt,
	}
}
