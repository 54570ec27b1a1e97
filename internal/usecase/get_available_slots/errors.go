package get_available_slots

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не описан в конфигурации клуба
	ErrCourtNotFound = errors.New("get_available_slots: court not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrDependency возвращается, когда провайдер недоступности не ответил
	ErrDependency = errors.New("get_available_slots: dependency failure")
)
