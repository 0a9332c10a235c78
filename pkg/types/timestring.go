package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Поддерживаемые форматы времени суток
const (
	Layout24h = "15:04"
	Layout12h = "3:04 PM"
)

var (
	// ErrInvalidTimeString некорректная строка времени
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// TimeString время суток в том виде, в котором его ввёл тренер ("5:30 AM", "17:00")
// Строка хранится как есть, разбор в минуты выполняется по требованию
type TimeString string

// NewTimeStringFromString валидирует и нормализует пробелы во входной строке
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(strings.Join(strings.Fields(s), " "))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeString создает строку времени в 24-часовом формате из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(Layout24h))
}

// String возвращает исходное представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero true для пустой строки
func (t TimeString) IsZero() bool {
	return strings.TrimSpace(string(t)) == ""
}

// Validate проверяет, что строка разбирается одним из поддерживаемых форматов
func (t TimeString) Validate() error {
	_, err := t.parse()
	return err
}

// Minutes количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	parsed, err := t.parse()
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// On возвращает момент времени в указанную дату
func (t TimeString) On(date time.Time) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location()), nil
}

// IsBefore сравнивает два времени суток
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

func (t TimeString) parse() (time.Time, error) {
	s := strings.ToUpper(strings.TrimSpace(string(t)))
	if s == "" {
		return time.Time{}, ErrInvalidTimeString
	}
	for _, layout := range []string{Layout24h, Layout12h, "3:04PM", "15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
	return nil
}
