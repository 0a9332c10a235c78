package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном пароле администратора
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken возвращается для подделанного, просроченного или чужого токена
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrForbidden возвращается, когда роль токена не подходит
	ErrForbidden = errors.New("auth: forbidden")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
