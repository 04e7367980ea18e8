package session

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/movie-list/internal/repository"
)

// SQLStore keeps sessions in the application database.  Sessions survive
// restarts and are shared between instances pointing at the same database.
type SQLStore struct {
	repo *repository.SessionRepo
	now  func() time.Time
}

// NewSQLStore wraps repo as a Store.
func NewSQLStore(repo *repository.SessionRepo) *SQLStore {
	return &SQLStore{repo: repo, now: time.Now}
}

func (s *SQLStore) Save(ctx context.Context, sessionID string, accountID uint64, ttl time.Duration) error {
	return s.repo.Create(ctx, sessionID, accountID, s.now().Add(ttl))
}

func (s *SQLStore) Load(ctx context.Context, sessionID string) (uint64, error) {
	id, err := s.repo.Validate(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return 0, ErrSessionNotFound
	}
	return id, err
}

func (s *SQLStore) Delete(ctx context.Context, sessionID string) error {
	return s.repo.Revoke(ctx, sessionID)
}
