package domain

import (
	"time"

	"github.com/m04kA/SMC-GymBooking/pkg/types"
)

// Slot is a named recurring daily time window with a booking capacity
type Slot struct {
	ID          int64
	Name        string
	TimeStart   types.TimeString
	TimeEnd     types.TimeString
	MaxCapacity int
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TimeRange returns the display form "5:30 AM - 7:00 AM"
func (s *Slot) TimeRange() string {
	return s.TimeStart.String() + " - " + s.TimeEnd.String()
}

// SlotUpdate is a partial replacement of slot fields; nil fields are left untouched
type SlotUpdate struct {
	Name        *string
	TimeStart   *types.TimeString
	TimeEnd     *types.TimeString
	MaxCapacity *int
	IsActive    *bool
}

// IsEmpty reports whether the update changes nothing
func (u *SlotUpdate) IsEmpty() bool {
	return u.Name == nil && u.TimeStart == nil && u.TimeEnd == nil && u.MaxCapacity == nil && u.IsActive == nil
}

// DefaultSlots is the catalogue used when no slots are configured yet
func DefaultSlots() []*Slot {
	return []*Slot{
		{Name: "Early Morning", TimeStart: "5:30 AM", TimeEnd: "7:00 AM", MaxCapacity: DefaultMaxCapacity, IsActive: true, SortOrder: 1},
		{Name: "Morning", TimeStart: "7:00 AM", TimeEnd: "8:30 AM", MaxCapacity: DefaultMaxCapacity, IsActive: true, SortOrder: 2},
		{Name: "Evening", TimeStart: "5:00 PM", TimeEnd: "6:30 PM", MaxCapacity: DefaultMaxCapacity, IsActive: true, SortOrder: 3},
		{Name: "Late Evening", TimeStart: "7:00 PM", TimeEnd: "8:30 PM", MaxCapacity: DefaultMaxCapacity, IsActive: true, SortOrder: 4},
	}
}

// ActiveSlots returns the active slots of the catalogue in their original order.
// Only an empty catalogue falls back to DefaultSlots; a catalogue whose slots are
// all switched off yields no slots.
func ActiveSlots(catalogue []*Slot) []*Slot {
	if len(catalogue) == 0 {
		return DefaultSlots()
	}
	active := make([]*Slot, 0, len(catalogue))
	for _, s := range catalogue {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return active
}
