package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hashicorp/go-multierror"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps sqlx so services can share one handle and rebind placeholders
// for whichever driver is configured.
type DB struct {
	*sqlx.DB
}

// Init opens the database and brings the schema up to date.
func Init(driver, dsn string) (*DB, error) {
	db, err := Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := Migrate(driver, dsn); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("[DB] connected (%s)", driver)
	return &DB{DB: db}, nil
}

// Migrate applies the embedded migrations on a dedicated connection, which
// the migrate instance closes when done.
func Migrate(driver, dsn string) (err error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}

	var target migratedb.Driver
	switch driver {
	case DriverPostgres:
		target, err = migratepg.WithInstance(conn, &migratepg.Config{})
	case DriverSQLite:
		target, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		target.Close()
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		src.Close()
		target.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if closeErr := multierror.Append(srcErr, dbErr).ErrorOrNil(); closeErr != nil {
			err = multierror.Append(err, closeErr).ErrorOrNil()
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.Printf("[DB] schema at version %d", version)
	return nil
}

// IsUniqueViolation reports whether err came from a unique or primary key
// constraint in either supported driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
