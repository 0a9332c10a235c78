package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от почтового API
	ErrInvalidResponse = errors.New("mailer client: invalid response")

	// ErrRejected возвращается, когда API отклонило письмо (4xx)
	ErrRejected = errors.New("mailer client: message rejected")

	// ErrNoRecipient возвращается для уведомления без адреса
	ErrNoRecipient = errors.New("mailer client: no recipient")
)
