package models

import (
	"time"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// CreateBlackoutRequest запрос на блокировку дня или слота
type CreateBlackoutRequest struct {
	Date   time.Time
	SlotID *int64  // nil = весь день
	Reason *string // опционально
}

// BlackoutResponse ответ с данными блокировки
type BlackoutResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // "2025-10-15"
	SlotID    *int64    `json:"slotId"`
	Reason    *string   `json:"reason,omitempty"`
	DayLevel  bool      `json:"dayLevel"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlackoutListResponse список блокировок
type BlackoutListResponse struct {
	Blackouts []BlackoutResponse `json:"blackouts"`
}

// FromDomainBlackout конвертирует domain.Blackout в BlackoutResponse
func FromDomainBlackout(b *domain.Blackout) *BlackoutResponse {
	return &BlackoutResponse{
		ID:        b.ID,
		Date:      b.BlockedDate.Format(domain.DateFormat),
		SlotID:    b.SlotID,
		Reason:    b.Reason,
		DayLevel:  b.IsDayLevel(),
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlackoutList конвертирует список блокировок
func FromDomainBlackoutList(list []*domain.Blackout) *BlackoutListResponse {
	resp := &BlackoutListResponse{Blackouts: make([]BlackoutResponse, 0, len(list))}
	for _, b := range list {
		resp.Blackouts = append(resp.Blackouts, *FromDomainBlackout(b))
	}
	return resp
}
