package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatusBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name     string
		endDate  time.Time
		expected MembershipStatus
		days     int
	}{
		{"yesterday is expired", time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), MembershipExpired, -1},
		{"today is expiring", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), MembershipExpiring, 0},
		{"seven days is expiring", time.Date(2024, 6, 22, 0, 0, 0, 0, time.UTC), MembershipExpiring, 7},
		{"eight days is active", time.Date(2024, 6, 23, 0, 0, 0, 0, time.UTC), MembershipActive, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.days, DaysRemaining(tt.endDate, now))
			assert.Equal(t, tt.expected, ClassifyStatus(tt.endDate, now))
		})
	}
}

func TestDaysRemainingIgnoresTimeOfDay(t *testing.T) {
	end := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)

	justAfterMidnight := time.Date(2024, 6, 15, 0, 0, 1, 0, time.UTC)
	justBeforeMidnight := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, 1, DaysRemaining(end, justAfterMidnight))
	assert.Equal(t, 1, DaysRemaining(end, justBeforeMidnight))
}

func TestDaysRemainingUsesLocalCalendarDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 01:00 on the 16th in IST is still the 15th in UTC
	now := time.Date(2024, 6, 16, 1, 0, 0, 0, ist)
	end := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysRemaining(end, now))
}

func TestCalculateEndDate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	end, err := CalculateEndDate(start, Plan1Month)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", end.Format(DateFormat))

	end, err = CalculateEndDate(start, Plan1Year)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", end.Format(DateFormat))

	end, err = CalculateEndDate(start, Plan3Months)
	require.NoError(t, err)
	assert.Equal(t, 90, DaysRemaining(end, start))
}

func TestCalculateEndDateUnknownPlan(t *testing.T) {
	_, err := CalculateEndDate(time.Now(), PlanType("2_years"))
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestParsePlanType(t *testing.T) {
	for _, p := range AllPlans {
		parsed, err := ParsePlanType(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
		assert.Positive(t, p.Days())
	}

	_, err := ParsePlanType("weekly")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestClientSetPlan(t *testing.T) {
	c := &Client{}
	start := time.Date(2024, 2, 10, 15, 30, 0, 0, time.UTC)

	require.NoError(t, c.SetPlan(Plan2Months, start))
	assert.Equal(t, Plan2Months, c.PlanType)
	assert.Equal(t, "2024-02-10", c.StartDate.Format(DateFormat))
	assert.Equal(t, "2024-04-10", c.EndDate.Format(DateFormat))

	before := *c
	assert.ErrorIs(t, c.SetPlan("bogus", start), ErrUnknownPlan)
	assert.Equal(t, before, *c)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+919876543210", NormalizePhone("+91 (987) 654-3210"))
	assert.Equal(t, "9876543210", NormalizePhone("98765 43210"))
	assert.Equal(t, "", NormalizePhone(" - () "))
}
