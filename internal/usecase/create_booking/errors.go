package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCourtNotFound возвращается, когда корт не описан в конфигурации клуба
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrDependency возвращается, когда провайдер или правило не смогли дать ответ
	ErrDependency = errors.New("create_booking: dependency failure")

	// ErrBookingConflict возвращается, когда окно заняли между проверкой и записью
	ErrBookingConflict = errors.New("create_booking: slot was taken concurrently")

	// ErrDailyCapExceeded возвращается из транзакции, когда лимит участника на день уже выбран
	ErrDailyCapExceeded = errors.New("create_booking: member daily cap exceeded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
