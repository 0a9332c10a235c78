package domain

import "time"

// DateOption is one entry of the booking date picker
type DateOption struct {
	Date    string // YYYY-MM-DD
	DayName string // Mon
	DayNum  int
	Month   string // Jan
	IsToday bool
}

// DateOnly strips the time of day, keeping the calendar date of t in its own location.
// The result is midnight UTC so that date arithmetic is free of DST shifts.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD into a UTC date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// NextDates returns windowDays consecutive dates starting today
func NextDates(now time.Time, windowDays int) []DateOption {
	if windowDays <= 0 {
		return []DateOption{}
	}

	today := DateOnly(now)
	dates := make([]DateOption, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		date := today.AddDate(0, 0, i)
		dates = append(dates, DateOption{
			Date:    date.Format(DateFormat),
			DayName: date.Format("Mon"),
			DayNum:  date.Day(),
			Month:   date.Format("Jan"),
			IsToday: i == 0,
		})
	}
	return dates
}

// InBookingWindow returns true if date is within [today, today+windowDays)
func InBookingWindow(date, now time.Time, windowDays int) bool {
	d := DateOnly(date)
	today := DateOnly(now)
	return !d.Before(today) && d.Before(today.AddDate(0, 0, windowDays))
}
