package get_settings

import (
	"net/http"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
)

type Handler struct {
	response *SettingsResponse
}

// NewHandler ответ собирается один раз: настройки меняются только с перезапуском
func NewHandler(settings Settings) *Handler {
	return &Handler{
		response: buildResponse(settings),
	}
}

// Handle GET /api/v1/settings
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.response)
}
