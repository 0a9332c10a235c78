package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует и нормализует входные данные запроса
// Для кабинета участника контакты подставляются позже, из реестра
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ClientID != nil {
		if *req.ClientID <= 0 {
			return fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
		}
		return nil
	}

	req.ClientName = strings.TrimSpace(req.ClientName)
	if req.ClientName == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.ClientName) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	req.ClientPhone = strings.TrimSpace(req.ClientPhone)
	if domain.NormalizePhone(req.ClientPhone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(req.ClientPhone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone is longer than %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}

	if req.ClientEmail != nil {
		email := strings.TrimSpace(*req.ClientEmail)
		if email == "" {
			req.ClientEmail = nil
		} else {
			if err := validate.Var(email, "email,max=254"); err != nil {
				return fmt.Errorf("%w: invalid email", ErrInvalidInput)
			}
			req.ClientEmail = &email
		}
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно [сегодня, сегодня+windowDays)
func validateDate(date, now time.Time, windowDays int) error {
	if !domain.InBookingWindow(date, now, windowDays) {
		return fmt.Errorf("%w: %s is not within %d days from today",
			ErrDateOutOfWindow, date.Format(domain.DateFormat), windowDays)
	}
	return nil
}
