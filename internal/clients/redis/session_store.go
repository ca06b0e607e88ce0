package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/shortsview-backend/internal/domain"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces session keys. Defaults to "shortsview:session:".
	Prefix string
}

// SessionStore keeps sessions as JSON values that Redis expires at the
// session's ExpiresAt.
type SessionStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	now    func() time.Time
}

type storedSession struct {
	AccountID uint      `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSessionStore(log *logger.Logger, cfg Config) (*SessionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "shortsview:session:"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &SessionStore{
		log:    log.With("service", "RedisSessionStore"),
		rdb:    rdb,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *SessionStore) key(id uuid.UUID) string { return s.prefix + id.String() }

func (s *SessionStore) Create(ctx context.Context, sess *types.Session) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis session store not initialized")
	}
	now := s.now()
	ttl := sess.ExpiresAt.Sub(now)
	if ttl <= 0 {
		// Already expired; nothing a later Get could return.
		return nil
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	raw, err := json.Marshal(storedSession{
		AccountID: sess.AccountID,
		ExpiresAt: sess.ExpiresAt.UTC(),
		CreatedAt: sess.CreatedAt.UTC(),
	})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(sess.ID), raw, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*types.Session, error) {
	if s == nil || s.rdb == nil {
		return nil, fmt.Errorf("redis session store not initialized")
	}
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("session %s: %w", id, pkgerrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var st storedSession
	if err := json.Unmarshal(raw, &st); err != nil {
		s.log.Warn("Dropping unreadable session", "session_id", id.String(), "error", err)
		_ = s.rdb.Del(ctx, s.key(id)).Err()
		return nil, fmt.Errorf("session %s: %w", id, pkgerrors.ErrNotFound)
	}
	sess := &types.Session{
		ID:        id,
		AccountID: st.AccountID,
		ExpiresAt: st.ExpiresAt,
		CreatedAt: st.CreatedAt,
	}
	if sess.Expired(s.now()) {
		return nil, fmt.Errorf("session %s: %w", id, pkgerrors.ErrNotFound)
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis session store not initialized")
	}
	return s.rdb.Del(ctx, s.key(id)).Err()
}

func (s *SessionStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
