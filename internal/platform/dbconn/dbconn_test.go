package dbconn_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"eurodist/internal/platform/config"
	"eurodist/internal/platform/dbconn"
	apperrors "eurodist/internal/platform/errors"
)

func newHandler(t *testing.T, dsn string, mode dbconn.Mode) *dbconn.Handler {
	t.Helper()
	h, err := dbconn.NewHandler(dbconn.Settings{Driver: config.DriverSQLite, DSN: dsn, Name: "test_conn", Mode: mode}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return h
}

func TestWithinMissingFileIsUnavailable(t *testing.T) {
	t.Parallel()
	h := newHandler(t, filepath.Join(t.TempDir(), "missing.db"), dbconn.ReadOnly)

	called := false
	err := h.Within(context.Background(), func(context.Context, *sql.DB) error {
		called = true
		return nil
	})
	if !errors.Is(err, apperrors.ErrDatabaseUnavailable) {
		t.Fatalf("expected database unavailable, got %v", err)
	}
	if called {
		t.Fatalf("query func must not run when the connection fails")
	}
	if h.Active() != 0 {
		t.Fatalf("expected no open handles, got %d", h.Active())
	}
}

func TestWithinDirectoryIsUnavailable(t *testing.T) {
	t.Parallel()
	h := newHandler(t, t.TempDir(), dbconn.ReadOnly)
	err := h.Within(context.Background(), func(context.Context, *sql.DB) error { return nil })
	if !errors.Is(err, apperrors.ErrDatabaseUnavailable) {
		t.Fatalf("expected database unavailable, got %v", err)
	}
}

func TestWithinReleasesOnSuccessAndFailure(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "cities.db")
	rw := newHandler(t, path, dbconn.ReadWrite)
	err := rw.Within(context.Background(), func(ctx context.Context, db *sql.DB) error {
		if rw.Active() != 1 {
			t.Errorf("expected one open handle inside Within, got %d", rw.Active())
		}
		_, err := db.ExecContext(ctx, `CREATE TABLE Cities (Name TEXT)`)
		return err
	})
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	if rw.Active() != 0 {
		t.Fatalf("expected handle released, got %d", rw.Active())
	}

	ro := newHandler(t, path, dbconn.ReadOnly)
	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		err = ro.Within(context.Background(), func(context.Context, *sql.DB) error { return boom })
		if !errors.Is(err, boom) {
			t.Fatalf("expected query error to pass through, got %v", err)
		}
		if ro.Active() != 0 {
			t.Fatalf("handle leaked after failed query: %d", ro.Active())
		}
	}
}

func TestReadOnlyRefusesWrites(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cities.db")
	rw := newHandler(t, path, dbconn.ReadWrite)
	if err := rw.Within(context.Background(), func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `CREATE TABLE Cities (Name TEXT)`)
		return err
	}); err != nil {
		t.Fatalf("create table: %v", err)
	}

	ro := newHandler(t, path, dbconn.ReadOnly)
	err := ro.Within(context.Background(), func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `INSERT INTO Cities (Name) VALUES ('Rome')`)
		return err
	})
	if err == nil {
		t.Fatalf("read-only connection should refuse inserts")
	}
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cities.db")
	h := newHandler(t, path, dbconn.ReadWrite)
	ctx := context.Background()
	if err := h.Within(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `CREATE TABLE Cities (Name TEXT)`)
		return err
	}); err != nil {
		t.Fatalf("create table: %v", err)
	}

	boom := errors.New("boom")
	err := h.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO Cities (Name) VALUES ('Rome')`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int
	if err := h.Within(ctx, func(ctx context.Context, db *sql.DB) error {
		return db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Cities`).Scan(&count)
	}); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, found %d rows", count)
	}
	if h.Active() != 0 {
		t.Fatalf("handle leaked: %d", h.Active())
	}
}

func TestHandlerSettings(t *testing.T) {
	t.Parallel()
	if _, err := dbconn.NewHandler(dbconn.Settings{Driver: "oracle", DSN: "x"}, zerolog.Nop()); !errors.Is(err, apperrors.ErrUnsupportedDriver) {
		t.Fatalf("expected unsupported driver, got %v", err)
	}
	if _, err := dbconn.NewHandler(dbconn.Settings{Driver: config.DriverSQLite}, zerolog.Nop()); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty dsn, got %v", err)
	}
	cases := map[string]string{
		config.DriverSQLite:   "sqlite3",
		config.DriverPostgres: "postgres",
		config.DriverMySQL:    "mysql",
	}
	for driver, dialect := range cases {
		h, err := dbconn.NewHandler(dbconn.Settings{Driver: driver, DSN: "dsn"}, zerolog.Nop())
		if err != nil {
			t.Fatalf("new handler %s: %v", driver, err)
		}
		if h.Dialect() != dialect {
			t.Fatalf("driver %s: expected dialect %s, got %s", driver, dialect, h.Dialect())
		}
		if h.Name() != config.DefaultConnectionName {
			t.Fatalf("expected default connection name, got %q", h.Name())
		}
	}
}
