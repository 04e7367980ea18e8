package model

import "time"

// Entry is one tracked movie on an account's list, stored in the
// `entries` table.  An entry is created from the first provider search
// result with only the descriptive columns filled; Rating, Ranking and
// Review stay nil until the owner submits the edit form.
//
// Fields:
//  ID          – primary key identifier.
//  AccountID   – owning account (accounts.id).
//  Title       – movie title, unique across all entries.
//  Year        – release year as reported by the provider (may be empty).
//  Description – provider overview text.
//  Rating      – personal rating between 1 and 10 (nullable).
//  Ranking     – personal ranking between 1 and 10 (nullable).
//  Review      – free text review (nullable).
//  ImageURL    – poster/backdrop URL (may be empty).
//  CreatedAt   – when the entry was added.
//  UpdatedAt   – last time the review fields were written.
type Entry struct {
	ID          uint64    // entries.id
	AccountID   uint64    // entries.account_id
	Title       string    // entries.title
	Year        string    // entries.year
	Description string    // entries.description
	Rating      *float64  // entries.rating
	Ranking     *int      // entries.ranking
	Review      *string   // entries.review
	ImageURL    string    // entries.img_url
	CreatedAt   time.Time // entries.created_at
	UpdatedAt   time.Time // entries.updated_at
}

// Reviewed reports whether the rating, ranking and review have been set.
func (e Entry) Reviewed() bool {
	return e.Rating != nil && e.Ranking != nil && e.Review != nil
}
