package repository

import (
	"context"
	"errors"
	"testing"
)

func TestAccountRepoCreateAndGet(t *testing.T) {
	t.Parallel()
	repo := NewAccountRepo(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "  Viewer@Example.com ", "hash", " Viewer ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("Create() returned account with ID 0")
	}
	if created.Email != "viewer@example.com" || created.Name != "Viewer" {
		t.Errorf("Create() = %q %q, want normalized email and trimmed name", created.Email, created.Name)
	}
	if created.CreatedAt.IsZero() {
		t.Error("Create() CreatedAt is zero")
	}

	byEmail, err := repo.GetByEmail(ctx, "VIEWER@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if byEmail.ID != created.ID || byEmail.PasswordHash != "hash" {
		t.Errorf("GetByEmail() = %+v, want %+v", byEmail, created)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byID.Email != created.Email {
		t.Errorf("GetByID() email = %q, want %q", byID.Email, created.Email)
	}
}

func TestAccountRepoDuplicateEmail(t *testing.T) {
	t.Parallel()
	repo := NewAccountRepo(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, "dup@example.com", "hash", "First"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := repo.Create(ctx, "DUP@example.com", "hash2", "Second")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("second Create() error = %v, want ErrEmailExists", err)
	}

	n, err := repo.CountByEmail(ctx, "dup@example.com")
	if err != nil {
		t.Fatalf("CountByEmail() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountByEmail() = %d, want 1", n)
	}
}

func TestAccountRepoNotFound(t *testing.T) {
	t.Parallel()
	repo := NewAccountRepo(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("GetByID() error = %v, want ErrAccountNotFound", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("GetByEmail() error = %v, want ErrAccountNotFound", err)
	}
}
