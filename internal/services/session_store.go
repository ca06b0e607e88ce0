package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/shortsview-backend/internal/data/repos"
	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
)

// SessionStore keeps server side sessions. Get returns ErrNotFound for
// sessions that are unknown or past ExpiresAt.
type SessionStore interface {
	Create(ctx context.Context, sess *types.Session) error
	Get(ctx context.Context, id uuid.UUID) (*types.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DBSessionStore keeps sessions in the account_session table.
type DBSessionStore struct {
	repo repos.SessionRepo
	now  func() time.Time
}

func NewDBSessionStore(repo repos.SessionRepo) *DBSessionStore {
	return &DBSessionStore{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *DBSessionStore) Create(ctx context.Context, sess *types.Session) error {
	return s.repo.Create(dbctx.New(ctx), sess)
}

func (s *DBSessionStore) Get(ctx context.Context, id uuid.UUID) (*types.Session, error) {
	sess, err := s.repo.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Expired(s.now()) {
		return nil, fmt.Errorf("session %s: %w", id, pkgerrors.ErrNotFound)
	}
	return sess, nil
}

func (s *DBSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(dbctx.New(ctx), id)
}

// Purge removes expired rows; it is called on a timer by the app.
func (s *DBSessionStore) Purge(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(dbctx.New(ctx), s.now())
}
