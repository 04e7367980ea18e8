package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/movie-list/internal/model"
)

func newAccount(t *testing.T, repo *AccountRepo, email string) *model.Account {
	t.Helper()
	a, err := repo.Create(context.Background(), email, "hash", "Tester")
	if err != nil {
		t.Fatalf("Create account: %v", err)
	}
	return a
}

func TestEntryRepoCreateLeavesReviewEmpty(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	acc := newAccount(t, NewAccountRepo(db), "a@example.com")
	repo := NewEntryRepo(db)
	ctx := context.Background()

	e := &model.Entry{
		AccountID:   acc.ID,
		Title:       "Inception",
		Year:        "2010",
		Description: "A thief who steals corporate secrets.",
		ImageURL:    "https://image.tmdb.org/t/p/w500/inception.jpg",
	}
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if e.ID == 0 {
		t.Fatal("Create() did not set ID")
	}

	got, err := repo.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Rating != nil || got.Ranking != nil || got.Review != nil {
		t.Errorf("new entry has rating=%v ranking=%v review=%v, want all nil", got.Rating, got.Ranking, got.Review)
	}
	if got.Reviewed() {
		t.Error("Reviewed() = true for a new entry")
	}
	if got.Title != "Inception" || got.Year != "2010" || got.AccountID != acc.ID {
		t.Errorf("GetByID() = %+v", got)
	}
}

func TestEntryRepoDuplicateTitle(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	accounts := NewAccountRepo(db)
	a := newAccount(t, accounts, "a@example.com")
	b := newAccount(t, accounts, "b@example.com")
	repo := NewEntryRepo(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &model.Entry{AccountID: a.ID, Title: "Heat"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	// Titles are unique across all lists, not per account.
	err := repo.Create(ctx, &model.Entry{AccountID: b.ID, Title: "Heat"})
	if !errors.Is(err, ErrTitleExists) {
		t.Fatalf("Create() duplicate error = %v, want ErrTitleExists", err)
	}
}

func TestEntryRepoUpdateReview(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	acc := newAccount(t, NewAccountRepo(db), "a@example.com")
	repo := NewEntryRepo(db)
	ctx := context.Background()

	e := &model.Entry{AccountID: acc.ID, Title: "Inception", Year: "2010", Description: "Dreams."}
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	other := &model.Entry{AccountID: acc.ID, Title: "Memento", Year: "2000"}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.UpdateReview(ctx, e.ID, 7.5, 3, "Great film"); err != nil {
		t.Fatalf("UpdateReview() error = %v", err)
	}

	got, err := repo.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Rating == nil || *got.Rating != 7.5 {
		t.Errorf("Rating = %v, want 7.5", got.Rating)
	}
	if got.Ranking == nil || *got.Ranking != 3 {
		t.Errorf("Ranking = %v, want 3", got.Ranking)
	}
	if got.Review == nil || *got.Review != "Great film" {
		t.Errorf("Review = %v, want Great film", got.Review)
	}
	if got.Title != "Inception" || got.Year != "2010" || got.Description != "Dreams." {
		t.Errorf("descriptive fields changed: %+v", got)
	}
	if !got.Reviewed() {
		t.Error("Reviewed() = false after UpdateReview")
	}

	untouched, err := repo.GetByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetByID(other) error = %v", err)
	}
	if untouched.Rating != nil || untouched.Review != nil || untouched.Ranking != nil {
		t.Errorf("other entry was modified: %+v", untouched)
	}

	if err := repo.UpdateReview(ctx, 9999, 5, 1, "x"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("UpdateReview(missing) error = %v, want ErrEntryNotFound", err)
	}
}

func TestEntryRepoListAndDelete(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	accounts := NewAccountRepo(db)
	a := newAccount(t, accounts, "a@example.com")
	b := newAccount(t, accounts, "b@example.com")
	repo := NewEntryRepo(db)
	ctx := context.Background()

	for _, title := range []string{"Alien", "Aliens"} {
		if err := repo.Create(ctx, &model.Entry{AccountID: a.ID, Title: title}); err != nil {
			t.Fatalf("Create(%s) error = %v", title, err)
		}
	}
	if err := repo.Create(ctx, &model.Entry{AccountID: b.ID, Title: "Heat"}); err != nil {
		t.Fatalf("Create(Heat) error = %v", err)
	}

	list, err := repo.ListByAccount(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListByAccount() error = %v", err)
	}
	if len(list) != 2 || list[0].Title != "Alien" || list[1].Title != "Aliens" {
		t.Fatalf("ListByAccount() = %d entries, want Alien, Aliens", len(list))
	}

	if err := repo.Delete(ctx, list[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, list[0].ID); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("GetByID(deleted) error = %v, want ErrEntryNotFound", err)
	}
	if err := repo.Delete(ctx, list[0].ID); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Delete(deleted) error = %v, want ErrEntryNotFound", err)
	}

	list, err = repo.ListByAccount(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListByAccount() error = %v", err)
	}
	if len(list) != 1 || list[0].Title != "Aliens" {
		t.Errorf("ListByAccount() after delete = %+v", list)
	}
}
