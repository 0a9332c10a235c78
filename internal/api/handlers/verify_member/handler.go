package verify_member

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GymBooking/internal/service/clients"
	"github.com/m04kA/SMC-GymBooking/internal/service/clients/models"
)

const (
	msgInvalidRequestBody = "phone number is required"
	msgNotFound           = "no membership found for this phone number"
)

type Handler struct {
	service ClientService
	issuer  TokenIssuer
	logger  Logger
}

func NewHandler(service ClientService, issuer TokenIssuer, logger Logger) *Handler {
	return &Handler{
		service: service,
		issuer:  issuer,
		logger:  logger,
	}
}

// Handle POST /api/v1/members/verify
// Истёкший абонемент возвращается с outcome=expired и без сессии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /members/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.VerifyByPhone(r.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrInvalidInput):
			h.logger.Warn("POST /members/verify - Invalid phone: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("POST /members/verify - Client not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /members/verify - Failed to verify member: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &VerifyResponse{VerifyResponse: result}
	if result.Outcome == models.VerifyVerified {
		session, err := h.issuer.IssueMemberToken(result.Client.ID)
		if err != nil {
			h.logger.Error("POST /members/verify - Failed to issue session: client_id=%d, error=%v",
				result.Client.ID, err)
			handlers.RespondInternalError(w)
			return
		}
		response.Session = session
	}

	h.logger.Info("POST /members/verify - Member verified: client_id=%d, outcome=%s",
		result.Client.ID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, response)
}
