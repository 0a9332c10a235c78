package domain

// SlotAvailability is the remaining capacity of one slot on one date
type SlotAvailability struct {
	Slot      *Slot
	Booked    int
	Available int
	Blocked   bool
}

// IsFull returns true if nothing can be booked
func (a *SlotAvailability) IsFull() bool {
	return a.Available <= 0
}

// DayAvailability is the availability of every active slot for a date
type DayAvailability struct {
	DayBlocked bool
	Reason     *string
	Slots      []SlotAvailability
}

// ComputeAvailability folds booking counts and blackouts over the slot catalogue.
// Available is 0 for blocked slots and never leaves [0, MaxCapacity].
func ComputeAvailability(slots []*Slot, counts map[int64]int, blackouts []*Blackout) DayAvailability {
	day := DayAvailability{
		DayBlocked: IsDayBlocked(blackouts),
		Slots:      make([]SlotAvailability, 0, len(slots)),
	}

	for _, b := range blackouts {
		if b.IsDayLevel() && b.Reason != nil {
			day.Reason = b.Reason
			break
		}
	}

	for _, slot := range slots {
		booked := counts[slot.ID]
		item := SlotAvailability{
			Slot:    slot,
			Booked:  booked,
			Blocked: day.DayBlocked || IsBlocked(blackouts, slot.ID),
		}
		if !item.Blocked {
			item.Available = clamp(slot.MaxCapacity-booked, 0, slot.MaxCapacity)
		}
		day.Slots = append(day.Slots, item)
	}

	return day
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
