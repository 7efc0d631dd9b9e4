// Package database manages the MySQL connection used by SQL-backed plots.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/logger"
)

const (
	defaultRetries = 3
	dialTimeout    = 10 * time.Second
	readTimeout    = 30 * time.Second
)

// Manager owns the single read-only connection pool shared by every mysql plot.
type Manager struct {
	DB *sql.DB

	config  *config.DatabaseConfig
	log     *logger.Logger
	retries int
	backoff time.Duration
	open    func(dsn string) (*sql.DB, error)
}

// NewManager creates a database manager from configuration.
func NewManager(cfg *config.DatabaseConfig, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		config:  cfg,
		log:     log.WithSource(fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)),
		retries: defaultRetries,
		backoff: time.Second,
		open: func(dsn string) (*sql.DB, error) {
			return sql.Open("mysql", dsn)
		},
	}
}

// Connect opens and pings the pool, retrying with exponential backoff.
func (m *Manager) Connect(ctx context.Context) error {
	db, err := m.connectWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.DB = db
	return nil
}

func (m *Manager) connectWithRetry(ctx context.Context) (*sql.DB, error) {
	var err error
	backoff := m.backoff

	for i := 0; i < m.retries; i++ {
		var db *sql.DB
		db, err = m.connect()
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				m.log.Debugw("database connected", "attempt", i+1)
				return db, nil
			}
			db.Close()
		}

		m.log.Warnw("database connection attempt failed", "attempt", i+1, "error", err)
		if i < m.retries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", m.retries, err)
}

func (m *Manager) connect() (*sql.DB, error) {
	db, err := m.open(BuildDSN(m.config))
	if err != nil {
		return nil, err
	}

	if m.config.MaxConnections > 0 {
		db.SetMaxOpenConns(m.config.MaxConnections)
	}
	if m.config.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(m.config.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

// BuildDSN constructs a MySQL DSN from configuration.
func BuildDSN(cfg *config.DatabaseConfig) string {
	return mysqlConfig(cfg).FormatDSN()
}

// BuildDSNRedacted is BuildDSN with the password masked, for display.
func BuildDSNRedacted(cfg *config.DatabaseConfig) string {
	mc := mysqlConfig(cfg)
	if mc.Passwd != "" {
		mc.Passwd = "***"
	}
	return mc.FormatDSN()
}

func mysqlConfig(cfg *config.DatabaseConfig) *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.Timeout = dialTimeout
	mc.ReadTimeout = readTimeout

	switch cfg.TLS {
	case "disable":
		mc.TLSConfig = "false"
	case "required":
		mc.TLSConfig = "true"
	default:
		mc.TLSConfig = "preferred"
	}
	return mc
}

// Close closes the pool if it was opened.
func (m *Manager) Close() error {
	if m.DB == nil {
		return nil
	}
	if err := m.DB.Close(); err != nil {
		return fmt.Errorf("database close: %w", err)
	}
	return nil
}

// Ping verifies the pool is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.DB == nil {
		return fmt.Errorf("database not connected")
	}
	if err := m.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
