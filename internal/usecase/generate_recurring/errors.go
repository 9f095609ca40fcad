package generate_recurring

import "errors"

var (
	// ErrRecurringNotFound возвращается, когда шаблон не найден у бизнеса
	ErrRecurringNotFound = errors.New("generate_recurring: recurring booking not found")

	// ErrRecurringInactive возвращается для выключенного шаблона
	ErrRecurringInactive = errors.New("generate_recurring: recurring booking is not active")

	// ErrInvalidRule возвращается, когда сохранённый шаблон не проходит проверку
	ErrInvalidRule = errors.New("generate_recurring: invalid recurrence rule")

	// ErrServiceUnavailable возвращается, когда услуга шаблона удалена или неактивна
	ErrServiceUnavailable = errors.New("generate_recurring: service is not available for booking")

	// ErrForbidden возвращается, когда пользователь не владелец бизнеса
	ErrForbidden = errors.New("generate_recurring: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_recurring: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_recurring: internal error")
)
