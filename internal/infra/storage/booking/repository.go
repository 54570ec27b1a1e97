package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

const table = "court_bookings"

var columns = []string{
	"id",
	"court_id",
	"member_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований кортов
type Repository struct {
	db       DBExecutor
	location *time.Location
}

// NewRepository создает репозиторий. Даты бронирований приводятся к таймзоне клуба loc
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, location: loc}
}

// CreateBooking создает бронирование.
// Проверку пересечений выполняет вызывающий внутри той же транзакции (см. GetCourtBookingsForDate);
// конфликт конкурентной сериализуемой транзакции возвращается как ErrSlotNotAvailable
func (r *Repository) CreateBooking(ctx context.Context, booking *domain.CourtBooking) (*domain.CourtBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"court_id",
			"member_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
		).
		Values(
			booking.CourtID,
			booking.MemberID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBooking - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if IsConflict(err) {
		return nil, fmt.Errorf("%w: CreateBooking - court=%d date=%s: %v",
			ErrSlotNotAvailable, booking.CourtID, booking.BookingDate.Format(domain.DateFormat), err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBooking - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID. В транзакции строка блокируется до её завершения
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CourtBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByMember получает историю бронирований участника.
// Опционально фильтрует по статусу
func (r *Repository) GetByMember(ctx context.Context, memberID int64, status *domain.BookingStatus) ([]domain.CourtBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"member_id": memberID}).
		OrderBy("booking_date DESC", "start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMember - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMember - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetCourtBookingsForDate получает активные бронирования корта на дату.
// Внутри транзакции строки блокируются (FOR UPDATE) до её завершения
func (r *Repository) GetCourtBookingsForDate(ctx context.Context, courtID int64, date time.Time) ([]domain.CourtBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtBookingsForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtBookingsForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetMemberBookingsForDate получает активные бронирования участника на дату.
// Внутри транзакции строки блокируются так же, как в GetCourtBookingsForDate
func (r *Repository) GetMemberBookingsForDate(ctx context.Context, memberID int64, date time.Time) ([]domain.CourtBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMemberBookingsForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMemberBookingsForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.CourtBooking, error) {
	var (
		booking              domain.CourtBooking
		createdAt, updatedAt sql.NullTime
		cancellationReason   sql.NullString
		cancelledAt          sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.CourtID,
		&booking.MemberID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&cancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// DATE приходит как полночь UTC, переносим дату в таймзону клуба
	y, m, d := booking.BookingDate.Date()
	booking.BookingDate = time.Date(y, m, d, 0, 0, 0, 0, r.location)

	if cancellationReason.Valid {
		booking.CancellationReason = &cancellationReason.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]domain.CourtBooking, error) {
	bookings := make([]domain.CourtBooking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
