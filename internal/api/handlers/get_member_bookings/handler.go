package get_member_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GymBooking/internal/api/middleware"
	"github.com/m04kA/SMC-GymBooking/internal/service/clients"
)

const (
	msgMissingClientID = "missing member session"
	msgNotFound        = "member not found"
)

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/members/me/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("GET /members/me/bookings - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	history, err := h.service.BookingHistory(r.Context(), clientID)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("GET /members/me/bookings - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /members/me/bookings - Failed to get history: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /members/me/bookings - History retrieved: client_id=%d, upcoming=%d, past=%d",
		clientID, len(history.Upcoming), len(history.Past))
	handlers.RespondJSON(w, http.StatusOK, history)
}
