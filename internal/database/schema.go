package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/movie-list/internal/config"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id  INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		title       TEXT UNIQUE,
		year        TEXT,
		description TEXT,
		rating      REAL,
		ranking     INTEGER,
		review      TEXT,
		img_url     TEXT,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_account ON entries(account_id)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id   INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		session_hash TEXT NOT NULL UNIQUE,
		expires_at   DATETIME NOT NULL,
		revoked_at   DATETIME NULL,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name          VARCHAR(255) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_accounts_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS entries (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		account_id  BIGINT UNSIGNED NOT NULL,
		title       VARCHAR(255) NULL,
		year        VARCHAR(16) NULL,
		description TEXT NULL,
		rating      DOUBLE NULL,
		ranking     INT NULL,
		review      TEXT NULL,
		img_url     VARCHAR(512) NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_entries_title (title),
		KEY idx_entries_account (account_id),
		CONSTRAINT fk_entries_account FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		account_id   BIGINT UNSIGNED NOT NULL,
		session_hash CHAR(64) NOT NULL,
		expires_at   DATETIME NOT NULL,
		revoked_at   DATETIME NULL,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_sessions_hash (session_hash),
		KEY idx_sessions_account (account_id),
		CONSTRAINT fk_sessions_account FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the accounts, entries and sessions tables when they do not
// exist yet.  It is safe to call on every start.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	stmts := sqliteSchema
	if driver == config.DriverMySQL {
		stmts = mysqlSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
