package manage_clients

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GymBooking/internal/service/clients"
)

const (
	msgInvalidClientID    = "invalid client ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStartDate   = "invalid start date, expected YYYY-MM-DD"
	msgNotFound           = "client not found"
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

// List GET /api/v1/admin/clients
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/clients - Failed to list clients: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/clients - Clients retrieved: count=%d, expiring=%d, expired=%d",
		len(result.Clients), result.Expiring, result.Expired)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/admin/clients/{clientId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "GET /admin/clients/{id}")
	if !ok {
		return
	}

	client, err := h.service.GetByID(r.Context(), clientID)
	if err != nil {
		h.respondError(w, "GET /admin/clients/{id}", clientID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, client)
}

// Create POST /api/v1/admin/clients
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admin/clients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/clients - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	client, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		h.respondError(w, "POST /admin/clients", 0, err)
		return
	}

	h.logger.Info("POST /admin/clients - Client created: client_id=%d, plan=%s, ends=%s",
		client.ID, client.PlanType, client.EndDate)
	handlers.RespondJSON(w, http.StatusCreated, client)
}

// Update PUT /api/v1/admin/clients/{clientId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "PUT /admin/clients/{id}")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/clients/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /admin/clients/{id} - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	client, err := h.service.Update(r.Context(), clientID, serviceReq)
	if err != nil {
		h.respondError(w, "PUT /admin/clients/{id}", clientID, err)
		return
	}

	h.logger.Info("PUT /admin/clients/{id} - Client updated: client_id=%d", clientID)
	handlers.RespondJSON(w, http.StatusOK, client)
}

// Renew POST /api/v1/admin/clients/{clientId}/renew
func (h *Handler) Renew(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "POST /admin/clients/{id}/renew")
	if !ok {
		return
	}

	var req RenewRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /admin/clients/{id}/renew - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/clients/{id}/renew - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	client, err := h.service.Renew(r.Context(), clientID, serviceReq)
	if err != nil {
		h.respondError(w, "POST /admin/clients/{id}/renew", clientID, err)
		return
	}

	h.logger.Info("POST /admin/clients/{id}/renew - Membership renewed: client_id=%d, ends=%s",
		clientID, client.EndDate)
	handlers.RespondJSON(w, http.StatusOK, client)
}

// Delete DELETE /api/v1/admin/clients/{clientId}
// Бронирования клиента сохраняются
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "DELETE /admin/clients/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), clientID); err != nil {
		h.respondError(w, "DELETE /admin/clients/{id}", clientID, err)
		return
	}

	h.logger.Info("DELETE /admin/clients/{id} - Client deleted: client_id=%d", clientID)
	w.WriteHeader(http.StatusNoContent)
}

// History GET /api/v1/admin/clients/{clientId}/bookings
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r, "GET /admin/clients/{id}/bookings")
	if !ok {
		return
	}

	history, err := h.service.BookingHistory(r.Context(), clientID)
	if err != nil {
		h.respondError(w, "GET /admin/clients/{id}/bookings", clientID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, history)
}

func (h *Handler) clientID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.ParseID(mux.Vars(r)["clientId"])
	if err != nil {
		h.logger.Warn("%s - Invalid client ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, clientID int64, err error) {
	switch {
	case errors.Is(err, clients.ErrInvalidInput), errors.Is(err, clients.ErrUnknownPlan):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, clients.ErrClientNotFound):
		h.logger.Warn("%s - Client not found: client_id=%d", route, clientID)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Failed: client_id=%d, error=%v", route, clientID, err)
		handlers.RespondInternalError(w)
	}
}
