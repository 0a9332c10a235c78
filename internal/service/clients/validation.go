package clients

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

var validate = validator.New()

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return "", fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return name, nil
}

func normalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if domain.NormalizePhone(phone) == "" {
		return "", fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxPhoneLength {
		return "", fmt.Errorf("%w: phone is longer than %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}
	return phone, nil
}

// normalizeEmail: пустая строка означает "без email"
func normalizeEmail(email *string) (*string, error) {
	if email == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil, nil
	}
	if err := validate.Var(trimmed, "email,max=254"); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return &trimmed, nil
}

func normalizeNotes(notes *string) (*string, error) {
	if notes == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return &trimmed, nil
}

func parsePlan(plan string) (domain.PlanType, error) {
	p, err := domain.ParsePlanType(strings.TrimSpace(plan))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}
	return p, nil
}
