package repository

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"
)

// ErrSessionNotFound is returned for unknown, expired or revoked sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepo persists login sessions.  Only a SHA-256 hash of the session id
// is stored, so a leaked table cannot be replayed as cookies.
type SessionRepo struct{ db *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

func hashSessionID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

// Create inserts a session row.
func (r *SessionRepo) Create(ctx context.Context, sessionID string, accountID uint64, exp time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sessions (account_id, session_hash, expires_at) VALUES (?, ?, ?)",
		accountID, hashSessionID(sessionID), exp.UTC())
	return err
}

// Validate returns the account id if a non-revoked, non-expired session exists.
func (r *SessionRepo) Validate(ctx context.Context, sessionID string) (uint64, error) {
	var (
		accountID uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT account_id, expires_at, revoked_at FROM sessions WHERE session_hash = ? LIMIT 1",
		hashSessionID(sessionID)).Scan(&accountID, &expiresAt, &revokedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	if revokedAt.Valid || !time.Now().UTC().Before(expiresAt) {
		return 0, ErrSessionNotFound
	}
	return accountID, nil
}

// Revoke marks a session as revoked.  Unknown sessions are not an error.
func (r *SessionRepo) Revoke(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE sessions SET revoked_at = ? WHERE session_hash = ? AND revoked_at IS NULL",
		time.Now().UTC(), hashSessionID(sessionID))
	return err
}

// DeleteExpired removes sessions that expired before now and returns how
// many rows went away.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < ?", now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
