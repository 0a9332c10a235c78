package domain

import "time"

// MembershipStatus is derived from the end date, never stored
type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipExpiring MembershipStatus = "expiring"
	MembershipExpired  MembershipStatus = "expired"
)

// DaysRemaining counts calendar days from today to endDate, ignoring time of day.
// Negative for dates in the past.
func DaysRemaining(endDate, now time.Time) int {
	diff := DateOnly(endDate).Sub(DateOnly(now))
	return int(diff.Hours() / 24)
}

// ClassifyStatus: expired if daysRemaining < 0, expiring if 0..7, active otherwise
func ClassifyStatus(endDate, now time.Time) MembershipStatus {
	return classify(DaysRemaining(endDate, now))
}

func classify(daysRemaining int) MembershipStatus {
	switch {
	case daysRemaining < 0:
		return MembershipExpired
	case daysRemaining <= DefaultExpiringThresholdDays:
		return MembershipExpiring
	default:
		return MembershipActive
	}
}
