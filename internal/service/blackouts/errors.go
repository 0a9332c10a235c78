package blackouts

import "errors"

var (
	// ErrBlackoutNotFound возвращается, когда блокировка не найдена
	ErrBlackoutNotFound = errors.New("blackout not found")

	// ErrSlotNotFound возвращается, когда блокируемый слот не существует
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
