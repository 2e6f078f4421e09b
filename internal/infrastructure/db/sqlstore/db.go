// Package sqlstore implements the post, comment and user repositories on
// database/sql. SQLite is the default driver; PostgreSQL is reachable
// through pgx with STORE_DRIVER=pgx.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

//go:embed migrations
var migrations embed.FS

// Config selects the SQL driver and data source.
type Config struct {
	Driver string
	DSN    string
}

// DB wraps the connection pool shared by the repositories.
type DB struct {
	db     *sql.DB
	driver string
}

// Open connects to the store described by cfg. SQLite connections get WAL,
// a busy timeout and foreign key enforcement, and are limited to a single
// writer.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlstore open: %w", err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore ping: %w", err)
	}

	if driver == DriverSQLite {
		if err := applyPragmas(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &DB{db: db, driver: driver}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("sqlstore: %q: %w", pragma, err)
		}
	}
	return nil
}

// Ping reports whether the store is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Driver returns the database/sql driver name in use.
func (d *DB) Driver() string {
	return d.driver
}

// Migrate applies every pending up migration for cfg.Driver. It opens its own
// connection because closing a migrate instance closes the database handle.
func Migrate(ctx context.Context, cfg Config) error {
	m, err := newMigrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sqlstore migrate up: %w", err)
	}
	return nil
}

// MigrateDown reverts every applied migration.
func MigrateDown(ctx context.Context, cfg Config) error {
	m, err := newMigrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sqlstore migrate down: %w", err)
	}
	return nil
}

// Version reports the applied schema version and whether the last migration
// left the schema dirty.
func Version(ctx context.Context, cfg Config) (uint, bool, error) {
	m, err := newMigrator(ctx, cfg)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func newMigrator(ctx context.Context, cfg Config) (*migrate.Migrate, error) {
	store, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var (
		drv  database.Driver
		name string
	)
	switch store.driver {
	case DriverSQLite:
		name = "sqlite3"
		drv, err = migratesqlite.WithInstance(store.db, &migratesqlite.Config{})
	default:
		name = "pgx5"
		drv, err = migratepgx.WithInstance(store.db, &migratepgx.Config{})
	}
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("sqlstore migrate driver: %w", err)
	}

	src, err := iofs.New(migrations, "migrations/"+store.driver)
	if err != nil {
		_ = drv.Close()
		return nil, fmt.Errorf("sqlstore migrate source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, name, drv)
	if err != nil {
		_ = drv.Close()
		return nil, fmt.Errorf("sqlstore migrate: %w", err)
	}
	return m, nil
}

// isUniqueViolation recognises unique constraint failures from either driver.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
