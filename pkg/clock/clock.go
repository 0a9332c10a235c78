package clock

import "time"

// Clock источник текущего времени в часовом поясе зала
// Календарные даты ("сегодня", окно бронирования, срок абонемента) считаются от него
type Clock struct {
	location *time.Location
}

// New создает часы для указанной зоны; nil означает локальную зону сервера
func New(location *time.Location) *Clock {
	if location == nil {
		location = time.Local
	}
	return &Clock{location: location}
}

// Now возвращает текущее время в зоне зала
func (c *Clock) Now() time.Time {
	return time.Now().In(c.location)
}

// Location возвращает зону зала
func (c *Clock) Location() *time.Location {
	return c.location
}
