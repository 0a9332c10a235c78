package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date        time.Time // Дата бронирования (без времени)
	SlotID      int64     // ID слота
	ClientName  string    // Имя клиента
	ClientPhone string    // Телефон клиента
	ClientEmail *string   // Email для подтверждения (опционально)

	// ClientID задан в кабинете участника: контакты берутся из реестра клиентов,
	// абонемент проверяется всегда
	ClientID *int64
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64     `json:"id"`
	BookingDate string    `json:"bookingDate"`
	SlotID      int64     `json:"slotId"`
	SlotName    string    `json:"slotName"`
	SlotTime    string    `json:"slotTime"`
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone"`
	ClientEmail *string   `json:"clientEmail,omitempty"`
	CancelToken string    `json:"cancelToken"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Config правила бронирования
type Config struct {
	WindowDays        int    // окно бронирования [сегодня, сегодня+WindowDays)
	RequireMembership bool   // публичное бронирование только для клиентов с действующим абонементом
	SiteURL           string // база для ссылки отмены в письме
}

// Исходы для метрики бронирований
const (
	outcomeCreated     = "created"
	outcomeFull        = "full"
	outcomeUnavailable = "unavailable"
	outcomeInvalid     = "invalid"
	outcomeRejected    = "membership"
	outcomeError       = "error"
)
