package models

import (
	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	Name        string `json:"name"`
	TimeStart   string `json:"timeStart"`             // "5:30 AM" или "05:30"
	TimeEnd     string `json:"timeEnd"`
	MaxCapacity *int   `json:"maxCapacity,omitempty"` // по умолчанию из конфигурации
}

// UpdateSlotRequest частичное обновление слота
// Все поля опциональны - обновляются только переданные значения
type UpdateSlotRequest struct {
	Name        *string `json:"name,omitempty"`
	TimeStart   *string `json:"timeStart,omitempty"`
	TimeEnd     *string `json:"timeEnd,omitempty"`
	MaxCapacity *int    `json:"maxCapacity,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TimeStart   string `json:"timeStart"`
	TimeEnd     string `json:"timeEnd"`
	Time        string `json:"time"` // "5:30 AM - 7:00 AM"
	MaxCapacity int    `json:"maxCapacity"`
	IsActive    bool   `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain.Slot в SlotResponse
func FromDomainSlot(slot *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:          slot.ID,
		Name:        slot.Name,
		TimeStart:   slot.TimeStart.String(),
		TimeEnd:     slot.TimeEnd.String(),
		Time:        slot.TimeRange(),
		MaxCapacity: slot.MaxCapacity,
		IsActive:    slot.IsActive,
		SortOrder:   slot.SortOrder,
	}
}

// FromDomainSlotList конвертирует список слотов
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}
