package get_settings

import (
	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// Settings публичные правила бронирования из конфигурации
type Settings struct {
	GymName           string
	WindowDays        int
	DefaultCapacity   int
	RequireMembership bool
}

// SettingsResponse HTTP response model
type SettingsResponse struct {
	GymName           string         `json:"gymName"`
	WindowDays        int            `json:"windowDays"`
	DefaultCapacity   int            `json:"defaultCapacity"`
	RequireMembership bool           `json:"requireMembership"`
	Plans             []PlanResponse `json:"plans"`
}

// PlanResponse тариф абонемента
type PlanResponse struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Days  int    `json:"days"`
}

func buildResponse(s Settings) *SettingsResponse {
	plans := make([]PlanResponse, 0, len(domain.AllPlans))
	for _, p := range domain.AllPlans {
		plans = append(plans, PlanResponse{
			Type:  string(p),
			Label: p.Label(),
			Days:  p.Days(),
		})
	}

	return &SettingsResponse{
		GymName:           s.GymName,
		WindowDays:        s.WindowDays,
		DefaultCapacity:   s.DefaultCapacity,
		RequireMembership: s.RequireMembership,
		Plans:             plans,
	}
}
