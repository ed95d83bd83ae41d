package dbconn

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"eurodist/internal/platform/config"
	apperrors "eurodist/internal/platform/errors"
)

type Mode int

const (
	// ReadOnly requires an existing database and refuses writes.
	ReadOnly Mode = iota
	// ReadWrite creates a missing sqlite file and its directory.
	ReadWrite
)

type Settings struct {
	Driver string
	DSN    string
	Name   string
	Mode   Mode
}

// Manager scopes database work to a connection that is released when fn
// returns, whatever fn returns.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context, *sql.DB) error) error
	WithinTx(ctx context.Context, fn func(context.Context, *sql.Tx) error) error
	Dialect() string
}

// Handler opens a fresh named connection per operation.
type Handler struct {
	settings Settings
	log      zerolog.Logger
	active   atomic.Int64
}

func NewHandler(settings Settings, log zerolog.Logger) (*Handler, error) {
	if _, err := driverName(settings.Driver); err != nil {
		return nil, err
	}
	if strings.TrimSpace(settings.DSN) == "" {
		return nil, fmt.Errorf("%w: dsn is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(settings.Name) == "" {
		settings.Name = config.DefaultConnectionName
	}
	return &Handler{settings: settings, log: log}, nil
}

func (h *Handler) Name() string { return h.settings.Name }

// Active reports how many connections are currently open.
func (h *Handler) Active() int { return int(h.active.Load()) }

// Dialect returns the goqu dialect name for the configured driver.
func (h *Handler) Dialect() string {
	switch h.settings.Driver {
	case config.DriverPostgres:
		return "postgres"
	case config.DriverMySQL:
		return "mysql"
	default:
		return "sqlite3"
	}
}

type Conn struct {
	DB   *sql.DB
	h    *Handler
	once sync.Once
}

// Close releases the connection. Calling it more than once is a no-op.
func (c *Conn) Close() error {
	var err error
	c.once.Do(func() {
		err = c.DB.Close()
		c.h.active.Add(-1)
		c.h.log.Debug().Str("conn", c.h.settings.Name).Msg("connection closed")
	})
	return err
}

// Open acquires a connection. Every failure wraps ErrDatabaseUnavailable.
func (h *Handler) Open(ctx context.Context) (*Conn, error) {
	db, err := h.open(ctx)
	if err != nil {
		h.log.Warn().Str("conn", h.settings.Name).Str("driver", h.settings.Driver).Err(err).Msg("connection failed")
		return nil, fmt.Errorf("%w: connection %q: %w", apperrors.ErrDatabaseUnavailable, h.settings.Name, err)
	}
	h.active.Add(1)
	h.log.Debug().Str("conn", h.settings.Name).Msg("connection opened")
	return &Conn{DB: db, h: h}, nil
}

func (h *Handler) Within(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	conn, err := h.Open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return fn(ctx, conn.DB)
}

func (h *Handler) WithinTx(ctx context.Context, fn func(context.Context, *sql.Tx) error) error {
	return h.Within(ctx, func(ctx context.Context, db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		if err := fn(ctx, tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

func (h *Handler) open(ctx context.Context) (*sql.DB, error) {
	name, err := driverName(h.settings.Driver)
	if err != nil {
		return nil, err
	}
	isSQLite := h.settings.Driver == config.DriverSQLite
	if isSQLite {
		if err := h.prepareSQLiteFile(); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open(name, h.settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", h.settings.Driver, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", h.settings.Driver, err)
	}
	if isSQLite {
		var tables int
		if err := db.QueryRowContext(ctx, `SELECT count(*) FROM sqlite_master`).Scan(&tables); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("check sqlite file: %w", err)
		}
		if h.settings.Mode == ReadOnly {
			if _, err := db.ExecContext(ctx, `PRAGMA query_only = ON`); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("set query_only: %w", err)
			}
		}
	}
	return db, nil
}

func (h *Handler) prepareSQLiteFile() error {
	dsn := h.settings.DSN
	if strings.HasPrefix(dsn, "file:") || strings.HasPrefix(dsn, ":memory:") {
		return nil
	}
	path := dsn
	if i := strings.IndexRune(path, '?'); i >= 0 {
		path = path[:i]
	}
	if h.settings.Mode == ReadWrite {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database file %s does not exist", path)
		}
		return fmt.Errorf("stat database file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path %s is a directory", path)
	}
	return nil
}

func driverName(driver string) (string, error) {
	switch driver {
	case config.DriverSQLite:
		return "sqlite", nil
	case config.DriverPostgres:
		return "pgx", nil
	case config.DriverMySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedDriver, driver)
	}
}
