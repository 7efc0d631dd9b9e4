// Package lock provides MySQL advisory locks that keep two gox3d processes
// from rendering the same plot at once.
package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrLockTimeout is returned when another session holds the lock.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Lock wait values in seconds.
const (
	TimeoutImmediate = 0
	TimeoutShort     = 1
	TimeoutInfinite  = -1
)

// maxNameLen is the MySQL limit on GET_LOCK names.
const maxNameLen = 64

// AdvisoryLock is a named MySQL lock. GET_LOCK is scoped to a session, so
// the lock pins one pooled connection from Acquire until Release.
type AdvisoryLock struct {
	db   *sql.DB
	name string
	conn *sql.Conn
}

// NewAdvisoryLock returns an unacquired lock.
func NewAdvisoryLock(db *sql.DB, name string) *AdvisoryLock {
	return &AdvisoryLock{db: db, name: name}
}

// Acquire waits up to timeoutSeconds for the lock. It reports false when the
// wait ran out.
//
// GET_LOCK returns 1 when obtained, 0 on timeout and NULL on error.
func (a *AdvisoryLock) Acquire(ctx context.Context, timeoutSeconds int) (bool, error) {
	if a.conn != nil {
		return true, nil
	}

	conn, err := a.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to reserve connection: %w", err)
	}

	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", a.name, timeoutSeconds).Scan(&result); err != nil {
		conn.Close()
		return false, fmt.Errorf("failed to execute GET_LOCK: %w", err)
	}
	if !result.Valid {
		conn.Close()
		return false, fmt.Errorf("GET_LOCK returned NULL for lock %q", a.name)
	}

	switch result.Int64 {
	case 1:
		a.conn = conn
		return true, nil
	case 0:
		conn.Close()
		return false, nil
	default:
		conn.Close()
		return false, fmt.Errorf("unexpected GET_LOCK return value: %d", result.Int64)
	}
}

// Release frees the lock and returns its connection to the pool. Releasing a
// lock that is not held is a no-op.
func (a *AdvisoryLock) Release(ctx context.Context) error {
	if a.conn == nil {
		return nil
	}
	conn := a.conn
	a.conn = nil
	defer conn.Close()

	var result sql.NullInt64
	if err := conn.QueryRowContext(ctx, "SELECT RELEASE_LOCK(?)", a.name).Scan(&result); err != nil {
		return fmt.Errorf("failed to execute RELEASE_LOCK: %w", err)
	}
	if !result.Valid || result.Int64 != 1 {
		return fmt.Errorf("lock %q was not held by this session", a.name)
	}
	return nil
}

// IsHeld reports whether this instance holds the lock.
func (a *AdvisoryLock) IsHeld() bool {
	return a.conn != nil
}

// Name returns the lock name.
func (a *AdvisoryLock) Name() string {
	return a.name
}

// WithLock runs fn while holding the lock and releases it afterwards, also
// when fn panics. It returns ErrLockTimeout if the lock stays busy.
func (a *AdvisoryLock) WithLock(ctx context.Context, timeoutSeconds int, fn func() error) (err error) {
	acquired, err := a.Acquire(ctx, timeoutSeconds)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("%w: lock %q is held by another instance", ErrLockTimeout, a.name)
	}

	defer func() {
		// The caller's context may already be done.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if releaseErr := a.Release(releaseCtx); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()

	return fn()
}

// PlotLockName returns the lock name for a plot: "gox3d:plot:{name}" with
// characters outside [A-Za-z0-9_-] replaced, cut to the MySQL limit.
func PlotLockName(plot string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, plot)

	name := "gox3d:plot:" + sanitized
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return name
}

// WithPlotLock runs fn under the plot's lock, failing fast with
// ErrLockTimeout when another process is rendering the same plot.
func WithPlotLock(ctx context.Context, db *sql.DB, plot string, fn func() error) error {
	return NewAdvisoryLock(db, PlotLockName(plot)).WithLock(ctx, TimeoutShort, fn)
}
