package manage_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GymBooking/internal/service/slots"
	"github.com/m04kA/SMC-GymBooking/internal/service/slots/models"
)

const (
	msgInvalidSlotID      = "invalid slot ID"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "slot not found"
	msgSlotInUse          = "slot has bookings, deactivate it instead"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/slots
// Все слоты, включая выключенные
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/slots - Failed to list slots: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/slots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/slots", 0, err)
		return
	}

	h.logger.Info("POST /admin/slots - Slot created successfully: slot_id=%d", slot.ID)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}

// Update PUT /api/v1/admin/slots/{slotId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	slotID, ok := h.slotID(w, r, "PUT /admin/slots/{id}")
	if !ok {
		return
	}

	var req models.UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.Update(r.Context(), slotID, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/slots/{id}", slotID, err)
		return
	}

	h.logger.Info("PUT /admin/slots/{id} - Slot updated successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, slot)
}

// SetActive PATCH /api/v1/admin/slots/{slotId}/active
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	slotID, ok := h.slotID(w, r, "PATCH /admin/slots/{id}/active")
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/slots/{id}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.SetActive(r.Context(), slotID, *req.IsActive)
	if err != nil {
		h.respondError(w, "PATCH /admin/slots/{id}/active", slotID, err)
		return
	}

	h.logger.Info("PATCH /admin/slots/{id}/active - Slot updated: slot_id=%d, active=%t", slotID, slot.IsActive)
	handlers.RespondJSON(w, http.StatusOK, slot)
}

// Delete DELETE /api/v1/admin/slots/{slotId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slotID, ok := h.slotID(w, r, "DELETE /admin/slots/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), slotID); err != nil {
		h.respondError(w, "DELETE /admin/slots/{id}", slotID, err)
		return
	}

	h.logger.Info("DELETE /admin/slots/{id} - Slot deleted successfully: slot_id=%d", slotID)
	w.WriteHeader(http.StatusNoContent)
}

// Reorder PUT /api/v1/admin/slots/order
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /admin/slots/order - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Reorder(r.Context(), req.SlotIDs); err != nil {
		h.respondError(w, "PUT /admin/slots/order", 0, err)
		return
	}

	h.logger.Info("PUT /admin/slots/order - Slots reordered: count=%d", len(req.SlotIDs))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) slotID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.ParseID(mux.Vars(r)["slotId"])
	if err != nil {
		h.logger.Warn("%s - Invalid slot ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, slotID int64, err error) {
	switch {
	case errors.Is(err, slots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, slots.ErrSlotNotFound):
		h.logger.Warn("%s - Slot not found: slot_id=%d", route, slotID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, slots.ErrSlotInUse):
		h.logger.Warn("%s - Slot in use: slot_id=%d", route, slotID)
		handlers.RespondConflict(w, msgSlotInUse)

	default:
		h.logger.Error("%s - Failed: slot_id=%d, error=%v", route, slotID, err)
		handlers.RespondInternalError(w)
	}
}
