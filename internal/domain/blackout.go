package domain

import "time"

// Blackout removes availability for a whole day (SlotID == nil) or one slot on a date
type Blackout struct {
	ID          int64
	BlockedDate time.Time
	SlotID      *int64
	Reason      *string
	CreatedAt   time.Time
}

// IsDayLevel returns true if the blackout blocks every slot of the date
func (b *Blackout) IsDayLevel() bool {
	return b.SlotID == nil
}

// Blocks returns true if the blackout applies to the given slot
func (b *Blackout) Blocks(slotID int64) bool {
	return b.SlotID == nil || *b.SlotID == slotID
}

// IsBlocked returns true if any entry blocks the slot. Entries must belong to one date
func IsBlocked(entries []*Blackout, slotID int64) bool {
	for _, e := range entries {
		if e.Blocks(slotID) {
			return true
		}
	}
	return false
}

// IsDayBlocked returns true if any entry is day-level. Entries must belong to one date
func IsDayBlocked(entries []*Blackout) bool {
	for _, e := range entries {
		if e.IsDayLevel() {
			return true
		}
	}
	return false
}
