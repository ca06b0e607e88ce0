package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/data/repos/testutil"
	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
)

func TestAccountRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAccountRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	created, err := repo.Create(dbc, &types.Account{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("Create: expected id to be assigned")
	}
	if created.WarningLevel != 0 || created.IsAdmin {
		t.Fatalf("Create: unexpected defaults: %+v", created)
	}

	got, err := repo.GetByID(dbc, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Username != "alice" {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	missing, err := repo.GetByID(dbc, created.ID+100)
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID (missing): expected nil, got %+v", missing)
	}

	byName, err := repo.GetByUsername(dbc, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Fatalf("GetByUsername: unexpected result: %+v", byName)
	}

	exists, err := repo.UsernameExists(dbc, "alice")
	if err != nil {
		t.Fatalf("UsernameExists: %v", err)
	}
	if !exists {
		t.Fatalf("UsernameExists: expected true")
	}
	exists, err = repo.EmailExists(dbc, "nobody@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("EmailExists (missing): expected false")
	}

	if _, err := repo.Create(dbc, &types.Account{Username: "alice", Email: "other@example.com", PasswordHash: "x"}); err == nil {
		t.Fatalf("Create: expected unique violation on username")
	}
}

func TestAccountRepoIncrementWarningLevel(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewAccountRepo(db, testutil.Logger(t))
	acc := testutil.SeedAccount(t, ctx, tx, "bob")

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for want := 1; want <= 3; want++ {
		level, err := repo.IncrementWarningLevel(dbc, acc.ID, at)
		if err != nil {
			t.Fatalf("IncrementWarningLevel: %v", err)
		}
		if level != want {
			t.Fatalf("IncrementWarningLevel: got=%d want=%d", level, want)
		}
	}

	got, err := repo.GetByID(dbc, acc.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.LastWarningDate == nil || !got.LastWarningDate.Equal(at) {
		t.Fatalf("last_warning_date: got=%v want=%v", got.LastWarningDate, at)
	}

	if _, err := repo.IncrementWarningLevel(dbc, acc.ID+100, at); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("IncrementWarningLevel (missing): expected ErrRecordNotFound, got %v", err)
	}
}

func TestSessionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewSessionRepo(db, testutil.Logger(t))
	acc := testutil.SeedAccount(t, ctx, tx, "carol")
	now := time.Now().UTC()

	live := &types.Session{ID: uuid.New(), AccountID: acc.ID, ExpiresAt: now.Add(time.Hour)}
	stale := &types.Session{ID: uuid.New(), AccountID: acc.ID, ExpiresAt: now.Add(-time.Hour)}
	for _, s := range []*types.Session{live, stale} {
		if err := repo.Create(dbc, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.GetByID(dbc, live.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.AccountID != acc.ID {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	n, err := repo.DeleteExpired(dbc, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 1 {
		t.Fatalf("DeleteExpired: expected 1 row, got %d", n)
	}

	if err := repo.Delete(dbc, live.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = repo.GetByID(dbc, live.ID)
	if err != nil {
		t.Fatalf("GetByID (deleted): %v", err)
	}
	if got != nil {
		t.Fatalf("GetByID (deleted): expected nil")
	}
}
