package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

var ErrApplyMigration = errors.New("migrations: failed to apply migration")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Files имена встроенных миграций в порядке применения
func Files() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Up применяет все ещё не применённые миграции. Каждая миграция выполняется в своей транзакции
func Up(ctx context.Context, db *sql.DB, logger Logger) (int, error) {
	names, err := Files()
	if err != nil {
		return 0, err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return 0, fmt.Errorf("%w: schema_migrations: %v", ErrApplyMigration, err)
	}

	applied := 0
	for _, name := range names {
		var exists bool
		if err := db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, name,
		).Scan(&exists); err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrApplyMigration, name, err)
		}
		if exists {
			continue
		}

		body, err := files.ReadFile(name)
		if err != nil {
			return applied, err
		}

		if err := apply(ctx, db, name, string(body)); err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrApplyMigration, name, err)
		}
		logger.Info("Migrations: applied %s", name)
		applied++
	}

	return applied, nil
}

func apply(ctx context.Context, db *sql.DB, name, body string) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, body); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
		return err
	}
	return tx.Commit()
}
