package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GymBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GymBooking/internal/api/middleware"
	"github.com/m04kA/SMC-GymBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-GymBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgInvalidInput       = "please check your name, phone and email"
	msgSlotNotFound       = "slot not found"
	msgSlotUnavailable    = "this slot is not available on the selected date"
	msgSlotFull           = "this slot is fully booked, please choose another slot"
	msgOutOfWindow        = "bookings are open for today and the upcoming days only"
	msgNoMembership       = "no membership found for this phone number"
	msgMembershipExpired  = "your membership has expired, please renew to book"
	msgMissingClientID    = "missing member session"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	h.execute(w, r, "POST /bookings", useCaseReq)
}

// HandleMember POST /api/v1/members/me/bookings
func (h *Handler) HandleMember(w http.ResponseWriter, r *http.Request) {
	// ID клиента кладёт middleware Member
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("POST /members/me/bookings - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	var req MemberBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /members/me/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /members/me/bookings - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	h.execute(w, r, "POST /members/me/bookings", useCaseReq)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, route string, req *createBooking.Request) {
	date := req.Date.Format(domain.DateFormat)

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("%s - Slot full: slot_id=%d, date=%s", route, req.SlotID, date)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("%s - Slot unavailable: slot_id=%d, date=%s", route, req.SlotID, date)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("%s - Slot not found: slot_id=%d", route, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrDateOutOfWindow):
			h.logger.Warn("%s - Date outside booking window: date=%s", route, date)
			handlers.RespondBadRequest(w, msgOutOfWindow)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrMembershipNotFound):
			h.logger.Warn("%s - Membership not found", route)
			handlers.RespondForbidden(w, msgNoMembership)

		case errors.Is(err, createBooking.ErrMembershipExpired):
			h.logger.Warn("%s - Membership expired", route)
			handlers.RespondForbidden(w, msgMembershipExpired)

		default:
			h.logger.Error("%s - Failed to create booking: slot_id=%d, date=%s, error=%v",
				route, req.SlotID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking created successfully: booking_id=%d, slot_id=%d, date=%s",
		route, result.ID, result.SlotID, result.BookingDate)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
