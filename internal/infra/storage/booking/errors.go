package booking

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда корт уже занят на это время
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// Коды ошибок Postgres, означающие конкурентное бронирование того же времени
const (
	pgSerializationFailure = "40001"
	pgExclusionViolation   = "23P01"
)

// IsConflict проверяет, что ошибка вызвана конкурентной записью на тот же корт.
// Ошибка сериализации может прийти и при COMMIT, поэтому проверяется вся цепочка
func IsConflict(err error) bool {
	if errors.Is(err, ErrSlotNotAvailable) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgSerializationFailure || pqErr.Code == pgExclusionViolation
	}
	return false
}
