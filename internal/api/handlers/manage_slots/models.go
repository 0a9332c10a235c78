package manage_slots

// SetActiveRequest HTTP request model включения/выключения слота
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// ReorderRequest HTTP request model нового порядка слотов
type ReorderRequest struct {
	SlotIDs []int64 `json:"slotIds" validate:"required,min=1,dive,gt=0"`
}
