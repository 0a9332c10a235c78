package get_member

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

// Handle GET /api/v1/members/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("GET /members/me - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	client, err := h.service.GetByID(r.Context(), clientID)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			// клиент удалён после выдачи сессии
			h.logger.Warn("GET /members/me - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /members/me - Failed to get client: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, client)
}
