package domain

import (
	"strings"
	"time"
)

// Client is a gym member with a fixed-duration plan.
// Phone is the natural key for self-verification; it identifies, it does not authenticate.
type Client struct {
	ID        int64
	Name      string
	Phone     string
	Email     *string
	PlanType  PlanType
	StartDate time.Time
	EndDate   time.Time
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status returns the derived membership status
func (c *Client) Status(now time.Time) MembershipStatus {
	return ClassifyStatus(c.EndDate, now)
}

// DaysRemaining returns days left in the membership window
func (c *Client) DaysRemaining(now time.Time) int {
	return DaysRemaining(c.EndDate, now)
}

// SetPlan assigns plan and start date and recomputes the end date
func (c *Client) SetPlan(plan PlanType, startDate time.Time) error {
	end, err := CalculateEndDate(startDate, plan)
	if err != nil {
		return err
	}
	c.PlanType = plan
	c.StartDate = DateOnly(startDate)
	c.EndDate = end
	return nil
}

// NormalizePhone strips spaces, dashes and parentheses
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '(', ')':
			return -1
		}
		return r
	}, phone)
}
