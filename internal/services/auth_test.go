package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/shortsview-backend/internal/data/repos"
	"github.com/yungbote/shortsview-backend/internal/data/repos/testutil"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
)

func newTestAuth(t *testing.T, ttl time.Duration) (AuthService, *DBSessionStore) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	store := NewDBSessionStore(repos.NewSessionRepo(db, log))
	svc := NewAuthService(db, log, repos.NewAccountRepo(db, log), store, "test-secret", ttl)
	return svc, store
}

func TestAuthRegisterValidation(t *testing.T) {
	svc, _ := newTestAuth(t, time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := []struct {
		name     string
		username string
		email    string
		password string
		want     string
	}{
		{name: "missing username", username: "  ", email: "x@example.com", password: "pw", want: MsgMissingFields},
		{name: "missing password", username: "bob", email: "bob@example.com", password: "", want: MsgMissingFields},
		{name: "duplicate username", username: "alice", email: "other@example.com", password: "pw", want: MsgUsernameTaken},
		{name: "duplicate email", username: "carol", email: "alice@example.com", password: "pw", want: MsgEmailTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			var verr *pkgerrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Message != tc.want {
				t.Fatalf("message: got=%q want=%q", verr.Message, tc.want)
			}
		})
	}
}

func TestAuthSessionLifecycle(t *testing.T) {
	svc, _ := newTestAuth(t, time.Hour)
	ctx := context.Background()

	created, err := svc.Register(ctx, "dana", "dana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "dana", "wrong"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("Authenticate (bad password): expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "s3cret"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("Authenticate (unknown user): expected ErrUnauthorized, got %v", err)
	}
	acc, err := svc.Authenticate(ctx, "dana", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if acc.ID != created.ID || acc.IsAdmin {
		t.Fatalf("Authenticate: unexpected account %+v", acc)
	}

	token, err := svc.StartSession(ctx, acc)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	rd, err := svc.ResolveSession(ctx, token)
	if err != nil {
		t.Fatalf("ResolveSession: %v", err)
	}
	if rd.AccountID != acc.ID || rd.Username != "dana" || rd.IsAdmin {
		t.Fatalf("ResolveSession: unexpected request data %+v", rd)
	}

	if _, err := svc.ResolveSession(ctx, token+"x"); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("ResolveSession (tampered): expected ErrUnauthorized, got %v", err)
	}

	if err := svc.EndSession(ctx, token); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if _, err := svc.ResolveSession(ctx, token); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("ResolveSession (after logout): expected ErrUnauthorized, got %v", err)
	}
	if err := svc.EndSession(ctx, "garbage"); err != nil {
		t.Fatalf("EndSession (garbage): %v", err)
	}
}

func TestAuthExpiredSession(t *testing.T) {
	svc, store := newTestAuth(t, -time.Minute)
	ctx := context.Background()

	acc, err := svc.Register(ctx, "erin", "erin@example.com", "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := svc.StartSession(ctx, acc)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.ResolveSession(ctx, token); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("ResolveSession (expired): expected ErrUnauthorized, got %v", err)
	}
	n, err := store.Purge(ctx)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("Purge: got=%d want=1", n)
	}
}

func TestAuthEnsureAdmin(t *testing.T) {
	svc, _ := newTestAuth(t, time.Hour)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if !created {
		t.Fatalf("EnsureAdmin: expected account to be created")
	}
	created, err = svc.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("EnsureAdmin (again): %v", err)
	}
	if created {
		t.Fatalf("EnsureAdmin (again): expected no new account")
	}

	acc, err := svc.Authenticate(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Authenticate admin: %v", err)
	}
	if !acc.IsAdmin {
		t.Fatalf("expected seeded account to be admin")
	}
}
