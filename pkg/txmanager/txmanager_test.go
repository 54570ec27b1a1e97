package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	opts     *sql.TxOptions
	beginErr error
}

func (f *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.opts = opts
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

func TestDoSerializable_Commits(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	var seen dbmetrics.DBExecutor
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		seen = dbmetrics.GetExecutor(ctx, nil)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, db.opts.Isolation)
	assert.Same(t, db.tx, seen)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)
	errBoom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}

func TestDo_BeginAndCommitErrors(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{beginErr: errors.New("no connection")})
	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)

	db := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("serialization failure")}}
	err = NewTransactionManager(db).Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCommitTx)
}
