package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GymBooking/internal/service/bookings"
)

const (
	msgMissingToken = "cancellation token is required"
	msgNotFound     = "booking not found or already cancelled"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/cancel/{token}
// Ссылка из письма с подтверждением, авторизация не требуется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		h.logger.Warn("DELETE /cancel/{token} - Missing token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	booking, err := h.service.CancelByToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /cancel/{token} - Booking not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /cancel/{token} - Failed to cancel booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /cancel/{token} - Booking cancelled successfully: booking_id=%d, date=%s",
		booking.ID, booking.BookingDate)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
