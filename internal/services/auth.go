package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/data/repos"
	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/normalization"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
	"github.com/yungbote/shortsview-backend/internal/platform/ctxutil"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

// Messages shown to the user on the login and register pages.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgMissingFields      = "Username and password are required"
	MsgUsernameTaken      = "Username already exists"
	MsgEmailTaken         = "Email already registered"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*types.Account, error)
	Authenticate(ctx context.Context, username, password string) (*types.Account, error)
	StartSession(ctx context.Context, acc *types.Account) (string, error)
	ResolveSession(ctx context.Context, token string) (*ctxutil.RequestData, error)
	EndSession(ctx context.Context, token string) error
	EnsureAdmin(ctx context.Context, username, email, password string) (bool, error)
	SessionTTL() time.Duration
}

type authService struct {
	db         *gorm.DB
	log        *logger.Logger
	accounts   repos.AccountRepo
	sessions   SessionStore
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	accounts repos.AccountRepo,
	sessions SessionStore,
	secret string,
	sessionTTL time.Duration,
) AuthService {
	return &authService{
		db:         db,
		log:        log.With("service", "AuthService"),
		accounts:   accounts,
		sessions:   sessions,
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (as *authService) SessionTTL() time.Duration { return as.sessionTTL }

func (as *authService) Register(ctx context.Context, username, email, password string) (*types.Account, error) {
	username = normalization.ParseUsername(username)
	email = normalization.ParseEmail(email)
	if username == "" || password == "" {
		return nil, pkgerrors.Validation(MsgMissingFields)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *types.Account
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		taken, err := as.accounts.UsernameExists(dbc, username)
		if err != nil {
			return err
		}
		if taken {
			return pkgerrors.Validation(MsgUsernameTaken)
		}
		taken, err = as.accounts.EmailExists(dbc, email)
		if err != nil {
			return err
		}
		if taken {
			return pkgerrors.Validation(MsgEmailTaken)
		}
		created, err = as.accounts.Create(dbc, &types.Account{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
			as.log.Error("Register failed", "username", username, "error", err)
		}
		return nil, err
	}
	as.log.Info("Account registered", "account_id", created.ID)
	return created, nil
}

func (as *authService) Authenticate(ctx context.Context, username, password string) (*types.Account, error) {
	username = normalization.ParseUsername(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", MsgInvalidCredentials, pkgerrors.ErrUnauthorized)
	}
	acc, err := as.accounts.GetByUsername(dbctx.New(ctx), username)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("%s: %w", MsgInvalidCredentials, pkgerrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%s: %w", MsgInvalidCredentials, pkgerrors.ErrUnauthorized)
	}
	return acc, nil
}

// StartSession stores a new session for acc and returns the signed cookie
// token. The token's subject is the account id and its jti the session id.
func (as *authService) StartSession(ctx context.Context, acc *types.Account) (string, error) {
	now := as.now()
	sess := &types.Session{
		ID:        uuid.New(),
		AccountID: acc.ID,
		ExpiresAt: now.Add(as.sessionTTL),
	}
	if err := as.sessions.Create(ctx, sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID.String(),
			Subject:   strconv.FormatUint(uint64(acc.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	as.log.Debug("Session started", "account_id", acc.ID, "session_id", sess.ID.String())
	return token, nil
}

func (as *authService) parse(token string) (*sessionClaims, uuid.UUID, uint, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&sessionClaims{},
		func(t *jwt.Token) (interface{}, error) { return as.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(as.now),
	)
	if err != nil {
		return nil, uuid.Nil, 0, fmt.Errorf("parse session token: %v: %w", err, pkgerrors.ErrUnauthorized)
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, uuid.Nil, 0, fmt.Errorf("invalid session token: %w", pkgerrors.ErrUnauthorized)
	}
	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, uuid.Nil, 0, fmt.Errorf("invalid session id in token: %w", pkgerrors.ErrUnauthorized)
	}
	accountID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || accountID == 0 {
		return nil, uuid.Nil, 0, fmt.Errorf("invalid subject in token: %w", pkgerrors.ErrUnauthorized)
	}
	return claims, sessionID, uint(accountID), nil
}

// ResolveSession validates token against the session store and loads the
// account behind it.
func (as *authService) ResolveSession(ctx context.Context, token string) (*ctxutil.RequestData, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("missing session token: %w", pkgerrors.ErrUnauthorized)
	}
	_, sessionID, accountID, err := as.parse(token)
	if err != nil {
		return nil, err
	}
	sess, err := as.sessions.Get(ctx, sessionID)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, fmt.Errorf("session ended: %w", pkgerrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if sess.AccountID != accountID {
		return nil, fmt.Errorf("session does not match token subject: %w", pkgerrors.ErrUnauthorized)
	}
	acc, err := as.accounts.GetByID(dbctx.New(ctx), accountID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("account gone: %w", pkgerrors.ErrUnauthorized)
	}
	return &ctxutil.RequestData{
		AccountID: acc.ID,
		SessionID: sessionID,
		Username:  acc.Username,
		IsAdmin:   acc.IsAdmin,
	}, nil
}

// EndSession deletes the session named by token. Tokens that no longer parse
// are ignored.
func (as *authService) EndSession(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	_, sessionID, _, err := as.parse(token)
	if err != nil {
		return nil
	}
	return as.sessions.Delete(ctx, sessionID)
}

// EnsureAdmin creates the administrator account when no account has username.
// It reports whether an account was created. Any failure rolls back.
func (as *authService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	username = normalization.ParseUsername(username)
	email = normalization.ParseEmail(email)
	if username == "" || password == "" {
		return false, pkgerrors.Validation(MsgMissingFields)
	}
	created := false
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := as.accounts.UsernameExists(dbc, username)
		if err != nil || exists {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if _, err := as.accounts.Create(dbc, &types.Account{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
			IsAdmin:      true,
		}); err != nil {
			return fmt.Errorf("create admin account: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
