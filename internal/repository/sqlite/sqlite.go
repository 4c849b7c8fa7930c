// Package sqlite implements the repository interfaces on SQLite.
//
// The driver is modernc.org/sqlite (pure Go, no CGo). Queries go through
// sqlx so rows scan straight into the model structs by their db tags, and
// the schema is versioned with golang-migrate from the SQL files embedded
// under migrations/.
//
// Record ids are xids. An id that does not parse as one can never match a
// row; lookups by such an id fail with a plain (non-NotFound) error, the
// same way a document store rejects a malformed object id.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/xid"

	"github.com/sakif/review-board/internal/apperror"
	"github.com/sakif/review-board/internal/model"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const driverName = "sqlite"

// busyTimeoutMS is how long a connection waits for another writer's lock
// before giving up with SQLITE_BUSY.
const busyTimeoutMS = 5000

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// DB wraps a sqlx connection pool and implements every repository
// interface plus the read model.
type DB struct {
	conn *sqlx.DB
}

// New opens the SQLite database at dbPath and migrates it to the latest
// schema version.
//
// dbPath examples:
//   - "data/reviews.db"  → file-based database (persistent)
//   - ":memory:"         → in-memory database (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sqlx.Open(driverName, dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every new connection to ":memory:" is a fresh, empty database, so the
	// pool must never grow past the one connection the schema lives on.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// dsn appends the busy_timeout pragma. modernc applies _pragma parameters to
// every connection the pool opens, not just the first.
func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)", dbPath, sep, busyTimeoutMS)
}

// NewFromConn wraps an already-open, already-migrated handle.
// Used with sqlmock to exercise store failure paths.
func NewFromConn(conn *sql.DB) *DB {
	return &DB{conn: sqlx.NewDb(conn, driverName)}
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// migrate applies every pending migration from migrations/.
// Do not call m.Close here: it closes the shared pool.
func (db *DB) migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db.conn.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// checkID rejects ids that are not xids.
func checkID(kind, id string) error {
	if _, err := xid.FromString(id); err != nil {
		return fmt.Errorf("sqlite: cast to id failed for %s %q: %w", kind, id, err)
	}
	return nil
}

// deleteByID removes one row by primary key. Zero rows removed is reported
// as NotFound with the given message.
func (db *DB) deleteByID(ctx context.Context, table, kind, id, notFound string) (model.DeleteResult, error) {
	if err := checkID(kind, id); err != nil {
		return model.DeleteResult{}, err
	}

	res, err := db.conn.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("sqlite: deleting %s %s: %w", kind, id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("sqlite: checking delete result for %s %s: %w", kind, id, err)
	}
	if n == 0 {
		return model.DeleteResult{}, apperror.NotFound(notFound)
	}

	return model.NewDeleteResult(n), nil
}

// deleteWhere removes every row of table whose column equals value.
// table and column are always constants from this package.
func (db *DB) deleteWhere(ctx context.Context, table, column, value string) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM `+table+` WHERE `+column+` = ?`, value)
	if err != nil {
		return 0, fmt.Errorf("sqlite: deleting %s by %s: %w", table, column, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: checking delete result for %s by %s: %w", table, column, err)
	}
	return n, nil
}
