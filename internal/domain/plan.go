package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownPlan is returned for a plan type outside the fixed catalogue
var ErrUnknownPlan = errors.New("domain: unknown plan type")

// PlanType is a fixed-duration membership product
type PlanType string

const (
	Plan1Month  PlanType = "1_month"
	Plan2Months PlanType = "2_months"
	Plan3Months PlanType = "3_months"
	Plan4Months PlanType = "4_months"
	Plan5Months PlanType = "5_months"
	Plan6Months PlanType = "6_months"
	Plan1Year   PlanType = "1_year"
)

var planDays = map[PlanType]int{
	Plan1Month:  30,
	Plan2Months: 60,
	Plan3Months: 90,
	Plan4Months: 120,
	Plan5Months: 150,
	Plan6Months: 180,
	Plan1Year:   365,
}

var planLabels = map[PlanType]string{
	Plan1Month:  "1 Month",
	Plan2Months: "2 Months",
	Plan3Months: "3 Months",
	Plan4Months: "4 Months",
	Plan5Months: "5 Months",
	Plan6Months: "6 Months",
	Plan1Year:   "1 Year",
}

// AllPlans lists plan types in ascending duration
var AllPlans = []PlanType{Plan1Month, Plan2Months, Plan3Months, Plan4Months, Plan5Months, Plan6Months, Plan1Year}

// ParsePlanType validates a plan type string
func ParsePlanType(s string) (PlanType, error) {
	p := PlanType(s)
	if _, ok := planDays[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlan, s)
	}
	return p, nil
}

// Days returns the plan duration in days, 0 for unknown plans
func (p PlanType) Days() int {
	return planDays[p]
}

// Label returns the human readable name
func (p PlanType) Label() string {
	if l, ok := planLabels[p]; ok {
		return l
	}
	return string(p)
}

// IsValid returns true for plans of the catalogue
func (p PlanType) IsValid() bool {
	_, ok := planDays[p]
	return ok
}

// CalculateEndDate adds the plan's day count to startDate.
// Unknown plans fail with ErrUnknownPlan instead of falling back to any plan.
func CalculateEndDate(startDate time.Time, plan PlanType) (time.Time, error) {
	days, ok := planDays[plan]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPlan, string(plan))
	}
	return DateOnly(startDate).AddDate(0, 0, days), nil
}
