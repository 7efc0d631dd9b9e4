package lock

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	getLock     = regexp.QuoteMeta("SELECT GET_LOCK(?, ?)")
	releaseLock = regexp.QuoteMeta("SELECT RELEASE_LOCK(?)")
)

func lockRow(v interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"result"}).AddRow(v)
}

func TestAdvisoryLock_Acquire(t *testing.T) {
	tests := []struct {
		name     string
		result   interface{}
		acquired bool
		wantErr  bool
	}{
		{"obtained", 1, true, false},
		{"timed out", 0, false, false},
		{"null result", nil, false, true},
		{"unexpected value", 7, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(getLock).WithArgs("gox3d:plot:plant", TimeoutShort).WillReturnRows(lockRow(tt.result))

			l := NewAdvisoryLock(db, "gox3d:plot:plant")
			acquired, err := l.Acquire(context.Background(), TimeoutShort)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.acquired, acquired)
			assert.Equal(t, tt.acquired, l.IsHeld())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdvisoryLock_AcquireQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(getLock).WillReturnError(errors.New("connection reset"))

	l := NewAdvisoryLock(db, "gox3d:plot:plant")
	_, err = l.Acquire(context.Background(), TimeoutImmediate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET_LOCK")
	assert.False(t, l.IsHeld())
}

func TestAdvisoryLock_Release(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	l := NewAdvisoryLock(db, "gox3d:plot:plant")
	assert.NoError(t, l.Release(context.Background()), "release without acquire is a no-op")

	mock.ExpectQuery(getLock).WillReturnRows(lockRow(1))
	mock.ExpectQuery(releaseLock).WithArgs("gox3d:plot:plant").WillReturnRows(lockRow(1))

	acquired, err := l.Acquire(context.Background(), TimeoutShort)
	require.NoError(t, err)
	require.True(t, acquired)

	// A second Acquire reuses the held lock without another query.
	acquired, err = l.Acquire(context.Background(), TimeoutShort)
	require.NoError(t, err)
	assert.True(t, acquired)

	require.NoError(t, l.Release(context.Background()))
	assert.False(t, l.IsHeld())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvisoryLock_WithLock(t *testing.T) {
	t.Run("runs and releases", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(getLock).WillReturnRows(lockRow(1))
		mock.ExpectQuery(releaseLock).WillReturnRows(lockRow(1))

		ran := false
		err = WithPlotLock(context.Background(), db, "plant", func() error {
			ran = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, ran)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("busy lock", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(getLock).WillReturnRows(lockRow(0))

		err = WithPlotLock(context.Background(), db, "plant", func() error {
			t.Fatal("fn must not run without the lock")
			return nil
		})
		assert.ErrorIs(t, err, ErrLockTimeout)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fn error is returned", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(getLock).WillReturnRows(lockRow(1))
		mock.ExpectQuery(releaseLock).WillReturnRows(lockRow(1))

		boom := errors.New("render failed")
		err = WithPlotLock(context.Background(), db, "plant", func() error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("released on panic", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(getLock).WillReturnRows(lockRow(1))
		mock.ExpectQuery(releaseLock).WillReturnRows(lockRow(1))

		assert.Panics(t, func() {
			_ = WithPlotLock(context.Background(), db, "plant", func() error { panic("boom") })
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPlotLockName(t *testing.T) {
	tests := []struct {
		plot string
		want string
	}{
		{"plant", "gox3d:plot:plant"},
		{"unit-7_b", "gox3d:plot:unit-7_b"},
		{"north/unit 7", "gox3d:plot:north_unit_7"},
		{"düsseldorf", "gox3d:plot:d_sseldorf"},
	}
	for _, tt := range tests {
		t.Run(tt.plot, func(t *testing.T) {
			assert.Equal(t, tt.want, PlotLockName(tt.plot))
		})
	}

	long := PlotLockName(strings.Repeat("x", 100))
	assert.Len(t, long, 64)
	assert.True(t, strings.HasPrefix(long, "gox3d:plot:xxx"))
}
