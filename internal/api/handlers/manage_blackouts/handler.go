package manage_blackouts

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GymBooking/internal/service/blackouts"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgInvalidBlackoutID  = "invalid blackout ID"
	msgNotFound           = "blackout not found"
	msgSlotNotFound       = "slot not found"
)

type Handler struct {
	service BlackoutService
	logger  Logger
}

func NewHandler(service BlackoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/blackouts
// Все блокировки по возрастанию даты
// Query params: upcoming=true - только с сегодняшней даты
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	upcomingOnly := r.URL.Query().Get("upcoming") == "true"

	result, err := h.service.List(r.Context(), upcomingOnly)
	if err != nil {
		h.logger.Error("GET /admin/blackouts - Failed to list blackouts: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/blackouts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBlackoutRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admin/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/blackouts - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	blackout, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, blackouts.ErrInvalidInput):
			h.logger.Warn("POST /admin/blackouts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, blackouts.ErrSlotNotFound):
			h.logger.Warn("POST /admin/blackouts - Slot not found: slot_id=%v", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("POST /admin/blackouts - Failed to create blackout: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blackouts - Blackout created: blackout_id=%d, date=%s, day_level=%t",
		blackout.ID, blackout.Date, blackout.DayLevel)
	handlers.RespondJSON(w, http.StatusCreated, blackout)
}

// Delete DELETE /api/v1/admin/blackouts/{blackoutId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	blackoutID, err := handlers.ParseID(mux.Vars(r)["blackoutId"])
	if err != nil {
		h.logger.Warn("DELETE /admin/blackouts/{id} - Invalid blackout ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlackoutID)
		return
	}

	if err := h.service.Delete(r.Context(), blackoutID); err != nil {
		switch {
		case errors.Is(err, blackouts.ErrBlackoutNotFound):
			h.logger.Warn("DELETE /admin/blackouts/{id} - Blackout not found: blackout_id=%d", blackoutID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/blackouts/{id} - Failed to delete blackout: blackout_id=%d, error=%v",
				blackoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blackouts/{id} - Blackout deleted: blackout_id=%d", blackoutID)
	w.WriteHeader(http.StatusNoContent)
}
