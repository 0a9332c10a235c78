package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GymBooking/pkg/ptr"
)

func testSlots() []*Slot {
	return []*Slot{
		{ID: 1, Name: "Early Morning", TimeStart: "5:30 AM", TimeEnd: "7:00 AM", MaxCapacity: 3, IsActive: true},
		{ID: 2, Name: "Morning", TimeStart: "7:00 AM", TimeEnd: "8:30 AM", MaxCapacity: 3, IsActive: true},
		{ID: 3, Name: "Evening", TimeStart: "5:00 PM", TimeEnd: "6:30 PM", MaxCapacity: 2, IsActive: true},
	}
}

func TestComputeAvailabilityCounts(t *testing.T) {
	day := ComputeAvailability(testSlots(), map[int64]int{1: 1, 2: 3}, nil)

	require.Len(t, day.Slots, 3)
	assert.False(t, day.DayBlocked)
	assert.Equal(t, 2, day.Slots[0].Available)
	assert.Equal(t, 0, day.Slots[1].Available)
	assert.True(t, day.Slots[1].IsFull())
	assert.Equal(t, 2, day.Slots[2].Available)
}

func TestComputeAvailabilityNeverOutOfRange(t *testing.T) {
	// capacity lowered below existing bookings, or stale negative counts
	day := ComputeAvailability(testSlots(), map[int64]int{1: 10, 2: -4}, nil)

	for _, s := range day.Slots {
		assert.GreaterOrEqual(t, s.Available, 0)
		assert.LessOrEqual(t, s.Available, s.Slot.MaxCapacity)
	}
	assert.Equal(t, 0, day.Slots[0].Available)
	assert.Equal(t, 3, day.Slots[1].Available)
}

func TestComputeAvailabilityDayBlackout(t *testing.T) {
	blackouts := []*Blackout{{ID: 1, Reason: ptr.Ptr("Holiday")}}

	day := ComputeAvailability(testSlots(), map[int64]int{}, blackouts)

	assert.True(t, day.DayBlocked)
	require.NotNil(t, day.Reason)
	assert.Equal(t, "Holiday", *day.Reason)
	for _, s := range day.Slots {
		assert.Equal(t, 0, s.Available)
		assert.True(t, s.Blocked)
	}
}

func TestComputeAvailabilitySlotBlackout(t *testing.T) {
	blackouts := []*Blackout{{ID: 1, SlotID: ptr.Ptr(int64(2))}}

	day := ComputeAvailability(testSlots(), map[int64]int{}, blackouts)

	assert.False(t, day.DayBlocked)
	assert.Equal(t, 3, day.Slots[0].Available)
	assert.True(t, day.Slots[1].Blocked)
	assert.Equal(t, 0, day.Slots[1].Available)
	assert.Equal(t, 2, day.Slots[2].Available)
}

func TestIsBlocked(t *testing.T) {
	slotLevel := []*Blackout{{SlotID: ptr.Ptr(int64(5))}}
	assert.True(t, IsBlocked(slotLevel, 5))
	assert.False(t, IsBlocked(slotLevel, 6))
	assert.False(t, IsDayBlocked(slotLevel))

	dayLevel := []*Blackout{{}}
	assert.True(t, IsBlocked(dayLevel, 6))
	assert.True(t, IsDayBlocked(dayLevel))

	assert.False(t, IsBlocked(nil, 1))
}

func TestActiveSlots(t *testing.T) {
	slots := testSlots()
	slots[1].IsActive = false

	active := ActiveSlots(slots)
	require.Len(t, active, 2)
	assert.Equal(t, int64(1), active[0].ID)
	assert.Equal(t, int64(3), active[1].ID)

	assert.Len(t, ActiveSlots(nil), 4, "empty catalogue falls back to defaults")

	for _, s := range slots {
		s.IsActive = false
	}
	assert.Empty(t, ActiveSlots(slots), "switched-off catalogue has no defaults")
}
