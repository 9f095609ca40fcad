package recurring

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("recurring.service: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена у бизнеса
	ErrServiceNotFound = errors.New("recurring.service: service not found")

	// ErrServiceInactive возвращается, когда услуга снята с записи
	ErrServiceInactive = errors.New("recurring.service: service is not available for booking")

	// ErrAccessDenied возвращается, когда пользователь не владелец бизнеса
	ErrAccessDenied = errors.New("recurring.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("recurring.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("recurring.service: internal error")
)
