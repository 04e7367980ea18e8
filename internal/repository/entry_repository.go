// Package repository contains data access logic separated from HTTP handlers.
// This file implements the list entry queries.  Every method issues a single
// auto-committed statement.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-list/internal/model"
)

// EntryRepo encapsulates all queries against the entries table.
type EntryRepo struct {
	db *sql.DB
}

// NewEntryRepo constructs an EntryRepo with the provided DB handle.
func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

const entryColumns = `id, account_id, title, year, description, rating, ranking, review, img_url, created_at, updated_at`

// Create inserts a new entry.  Rating, Ranking and Review are written as
// given (nil at add time).  On success e.ID, CreatedAt and UpdatedAt are
// populated from the stored row.  A title that is already tracked yields
// ErrTitleExists.
func (r *EntryRepo) Create(ctx context.Context, e *model.Entry) error {
	const q = `INSERT INTO entries (account_id, title, year, description, rating, ranking, review, img_url)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.AccountID, e.Title, nullString(e.Year), nullString(e.Description),
		e.Rating, e.Ranking, e.Review, nullString(e.ImageURL))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTitleExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*e = *stored
	return nil
}

// GetByID fetches an entry by id regardless of owner.  It returns
// ErrEntryNotFound when no row exists.
func (r *EntryRepo) GetByID(ctx context.Context, id uint64) (*model.Entry, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM entries WHERE id = ?", id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return e, nil
}

// ListByAccount returns all entries owned by the account in insertion order.
func (r *EntryRepo) ListByAccount(ctx context.Context, accountID uint64) ([]*model.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE account_id = ? ORDER BY id", accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateReview overwrites rating, ranking and review of one entry.  Title,
// year, description and image are left untouched.
func (r *EntryRepo) UpdateReview(ctx context.Context, id uint64, rating float64, ranking int, review string) error {
	const q = `UPDATE entries
	           SET rating = ?, ranking = ?, review = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rating, ranking, review, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Delete removes an entry.  It returns ErrEntryNotFound when nothing was removed.
func (r *EntryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (*model.Entry, error) {
	var (
		e                              model.Entry
		title, year, desc, review, img sql.NullString
		rating                         sql.NullFloat64
		ranking                        sql.NullInt64
	)
	if err := s.Scan(&e.ID, &e.AccountID, &title, &year, &desc, &rating, &ranking, &review, &img,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Title = title.String
	e.Year = year.String
	e.Description = desc.String
	e.ImageURL = img.String
	if rating.Valid {
		v := rating.Float64
		e.Rating = &v
	}
	if ranking.Valid {
		v := int(ranking.Int64)
		e.Ranking = &v
	}
	if review.Valid {
		v := review.String
		e.Review = &v
	}
	return &e, nil
}

// nullString stores empty strings as NULL, matching the nullable columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
