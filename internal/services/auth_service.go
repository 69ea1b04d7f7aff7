package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/repos"
)

// ErrBadCreds is returned for unknown usernames and wrong passwords alike.
var ErrBadCreds = apperr.Unauthenticated("Invalid username or password")

var ErrNoSession = apperr.Unauthenticated("Authentication required")

type AuthService struct {
	Users      repos.UserStore
	Sessions   repos.SessionStore
	Lockout    Lockout
	SessionTTL time.Duration
	Now        func() time.Time
}

func NewAuthService(users repos.UserStore, sessions repos.SessionStore, lockout Lockout, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, Lockout: lockout, SessionTTL: ttl, Now: time.Now}
}

// Login checks the lockout, verifies the credentials and opens a new
// session. prevToken, if set, is destroyed so a login never reuses a token.
func (s *AuthService) Login(ctx context.Context, username, password, prevToken string) (*domain.Session, *domain.PublicUser, error) {
	now := s.Now()
	remaining, err := s.Lockout.Check(ctx, username, now)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if remaining > 0 {
		return nil, nil, apperr.Locked(remaining)
	}

	u, err := s.Users.ValidateUser(username, password)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if u == nil {
		if _, err := s.Lockout.Fail(ctx, username, now); err != nil {
			return nil, nil, apperr.Internal(err)
		}
		return nil, nil, ErrBadCreds
	}

	if err := s.Lockout.Reset(ctx, username); err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if prevToken != "" {
		_ = s.Sessions.DeleteSession(prevToken)
	}
	sess := domain.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: now.Add(s.SessionTTL),
		CreatedAt: now.UTC().Format(time.RFC3339),
	}
	if err := s.Sessions.CreateSession(sess); err != nil {
		return nil, nil, apperr.Internal(err)
	}
	return &sess, u.Public(), nil
}

// Logout is idempotent.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	if err := s.Sessions.DeleteSession(token); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// CurrentUser resolves a session token to the public user projection.
func (s *AuthService) CurrentUser(token string) (*domain.PublicUser, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	sess, err := s.Sessions.GetSession(token)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !s.Now().Before(sess.ExpiresAt) {
		_ = s.Sessions.DeleteSession(token)
		return nil, ErrNoSession
	}
	u, err := s.Users.GetUser(sess.UserID)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return u.Public(), nil
}
