package maintenance

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
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

var (
	ErrBuildQuery = errors.New("maintenance.repository: failed to build query")
	ErrExecQuery  = errors.New("maintenance.repository: failed to execute query")
	ErrScanRow    = errors.New("maintenance.repository: failed to scan row")
	ErrInvalid    = errors.New("maintenance.repository: invalid maintenance window")
)

const table = "court_maintenance_windows"

// Repository окна обслуживания кортов
type Repository struct {
	db       dbmetrics.DBExecutor
	location *time.Location
}

func NewRepository(db dbmetrics.DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, location: loc}
}

// Create добавляет окно обслуживания
func (r *Repository) Create(ctx context.Context, w *domain.MaintenanceWindow) (*domain.MaintenanceWindow, error) {
	if w.CourtID <= 0 || !w.StartTime.IsBefore(w.EndTime) {
		return nil, fmt.Errorf("%w: court=%d %s-%s", ErrInvalid, w.CourtID, w.StartTime, w.EndTime)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("court_id", "maintenance_date", "start_time", "end_time", "note").
		Values(w.CourtID, w.Date.Format(domain.DateFormat), w.StartTime, w.EndTime, w.Note).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return w, nil
}

// GetByCourtAndDate получает окна обслуживания корта на дату
func (r *Repository) GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]domain.MaintenanceWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "court_id", "maintenance_date", "start_time", "end_time", "note").
		From(table).
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"maintenance_date": date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.MaintenanceWindow, 0)
	for rows.Next() {
		var (
			w          domain.MaintenanceWindow
			start, end types.TimeString
			note       sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.CourtID, &w.Date, &start, &end, &note); err != nil {
			return nil, fmt.Errorf("%w: GetByCourtAndDate - scan row: %v", ErrScanRow, err)
		}
		y, m, d := w.Date.Date()
		w.Date = time.Date(y, m, d, 0, 0, 0, 0, r.location)
		w.StartTime, w.EndTime = start, end
		w.Note = note.String
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndDate - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
