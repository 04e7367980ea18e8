package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/movie-list/internal/config"
	"github.com/iliyamo/movie-list/internal/database"
	"github.com/iliyamo/movie-list/internal/repository"
)

func TestSQLStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db, config.DriverSQLite); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	acc, err := repository.NewAccountRepo(db).Create(ctx, "sql@example.com", "hash", "SQL")
	if err != nil {
		t.Fatalf("Create account: %v", err)
	}

	s := NewSQLStore(repository.NewSessionRepo(db))
	if err := s.Save(ctx, "sid", acc.ID, time.Hour); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	id, err := s.Load(ctx, "sid")
	if err != nil || id != acc.ID {
		t.Fatalf("Load() = %d, %v; want %d", id, err, acc.ID)
	}
	if err := s.Delete(ctx, "sid"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Load(ctx, "sid"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Load(deleted) error = %v, want ErrSessionNotFound", err)
	}
}
