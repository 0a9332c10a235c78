package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не существует
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotUnavailable возвращается, когда слот выключен или заблокирован на дату
	ErrSlotUnavailable = errors.New("create_booking: slot is unavailable on this date")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrDateOutOfWindow возвращается для даты в прошлом или за пределами окна бронирования
	ErrDateOutOfWindow = errors.New("create_booking: date is outside the booking window")

	// ErrMembershipNotFound возвращается, когда бронирование требует абонемент, а клиент не найден
	ErrMembershipNotFound = errors.New("create_booking: membership not found")

	// ErrMembershipExpired возвращается, когда абонемент клиента истёк
	ErrMembershipExpired = errors.New("create_booking: membership expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
