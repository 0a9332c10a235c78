package domain

// Default configuration values
const (
	DefaultMaxCapacity           = 3
	DefaultBookingWindowDays     = 14
	DefaultExpiringThresholdDays = 7
)

// Business validation constants
const (
	MinSlotCapacity      = 1
	MaxSlotCapacity      = 100
	MaxNameLength        = 100
	MaxPhoneLength       = 32
	MaxEmailLength       = 254
	MaxReasonLength      = 500
	MaxNotesLength       = 2000
	MaxSlotNameLength    = 64
	MaxBookingWindowDays = 90
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
