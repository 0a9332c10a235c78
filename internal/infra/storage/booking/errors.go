package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotFull возвращается триггером допуска, когда все места в слоте заняты
	ErrSlotFull = errors.New("booking.repository: slot is full")

	// ErrSlotUnavailable возвращается триггером допуска для заблокированного или выключенного слота
	ErrSlotUnavailable = errors.New("booking.repository: slot is unavailable")

	// ErrSlotNotFound возвращается, когда бронирование ссылается на несуществующий слот
	ErrSlotNotFound = errors.New("booking.repository: slot not found")

	// ErrDuplicateToken возвращается при коллизии токена отмены
	ErrDuplicateToken = errors.New("booking.repository: duplicate cancel token")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
