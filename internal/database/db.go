package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/iliyamo/movie-list/internal/config"
)

// Open connects to the configured store and verifies the connection.
func Open(cfg config.Config) (*sql.DB, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	case config.DriverSQLite, "":
		return OpenSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}

// OpenSQLite opens the local database file, creating it when absent.  The
// path can be ":memory:" for an in-memory database.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on"
	}
	db, err := sql.Open(config.DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: an in-memory database lives and dies with its
	// connection, and SQLite serialises writers anyway.
	db.SetMaxOpenConns(1)

	if err := ping(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// OpenMySQL connects to MySQL and verifies the connection.
func OpenMySQL(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	// clientFoundRows=true -> RowsAffected counts matched rows, not changed ones
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, host, port, name)

	db, err := sql.Open(config.DriverMySQL, dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := ping(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ping verifies the connection with a timeout.
func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
