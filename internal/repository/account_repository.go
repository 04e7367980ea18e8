package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-list/internal/model"
)

// AccountRepo encapsulates all queries against the accounts table.
type AccountRepo struct{ db *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

const accountColumns = "id, email, password_hash, name, created_at"

// normalizeEmail lower-cases and trims so uniqueness is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts an account with an already hashed password and returns the
// stored row.  A duplicate email yields ErrEmailExists.
func (r *AccountRepo) Create(ctx context.Context, email, passwordHash, name string) (*model.Account, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO accounts (email, password_hash, name) VALUES (?, ?, ?)",
		normalizeEmail(email), passwordHash, strings.TrimSpace(name))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE email = ? LIMIT 1", normalizeEmail(email))
	return scanAccount(row)
}

// GetByID fetches an account by id.  ErrAccountNotFound lets the caller
// decide what a dangling session means.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (*model.Account, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = ? LIMIT 1", id)
	return scanAccount(row)
}

// CountByEmail returns how many accounts use the email (0 or 1).
func (r *AccountRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM accounts WHERE email = ?", normalizeEmail(email)).Scan(&n)
	return n, err
}

func scanAccount(row *sql.Row) (*model.Account, error) {
	var a model.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}
