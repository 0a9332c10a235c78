package get_available_slots

import (
	"time"
)

// Request модель запроса на получение доступности слотов
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response доступность всех активных слотов на дату
// При DayBlocked вся дата недоступна независимо от счётчиков
type Response struct {
	Date       string  `json:"date"`
	DayName    string  `json:"dayName"`
	DayBlocked bool    `json:"dayBlocked"`
	Reason     *string `json:"reason,omitempty"`
	Bookable   bool    `json:"bookable"` // дата внутри окна бронирования
	Slots      []Slot  `json:"slots"`
}

// Slot модель доступности слота
// ID равен 0 для слотов по умолчанию, пока каталог пуст
type Slot struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TimeStart   string `json:"timeStart"`
	TimeEnd     string `json:"timeEnd"`
	Time        string `json:"time"`
	MaxCapacity int    `json:"maxCapacity"`
	Booked      int    `json:"booked"`
	Available   int    `json:"available"`
	Blocked     bool   `json:"blocked"`
}

// DatesResponse даты, доступные для выбора
type DatesResponse struct {
	WindowDays int    `json:"windowDays"`
	Dates      []Date `json:"dates"`
}

// Date элемент выбора даты
type Date struct {
	Date    string `json:"date"`
	DayName string `json:"dayName"`
	DayNum  int    `json:"dayNum"`
	Month   string `json:"month"`
	IsToday bool   `json:"isToday"`
}
