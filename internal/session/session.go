package session

import (
	"context"
	"sync"
	"time"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
	wrap "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger/wrapper"
	"github.com/golang-jwt/jwt/v5"
)

// Session holds the authenticated user's identity for the lifetime of the
// process. It is constructed once at startup and passed down explicitly;
// restoration from durable storage happens inside New, before any
// authorization check can run.
type Session struct {
	mu    sync.RWMutex
	state *State

	store *Store
	log   logger.Logger
	now   func() time.Time
}

func New(ctx context.Context, store *Store, log logger.Logger) *Session {
	s := &Session{
		store: store,
		log:   log,
		now:   time.Now,
	}

	ctx = wrap.WithAction(ctx, types.ActionSessionRestore)
	state, err := store.Load()
	if err != nil {
		// A broken store means no session, not a broken client.
		log.Warn(ctx, "failed to restore session, starting unauthenticated")
		return s
	}
	if state != nil {
		s.state = state
		log.Info(ctx, "session restored", "user_id", state.UserID)
	}
	return s
}

// Login persists the identity and then publishes it to memory. If persistence
// fails, memory is left untouched: both or neither.
func (s *Session) Login(ctx context.Context, userID string, profile models.UserIdentity, accessToken string) error {
	ctx = wrap.WithAction(ctx, types.ActionLogin)

	state := &State{UserID: userID, Profile: profile, AccessToken: accessToken}
	if err := s.store.Save(state); err != nil {
		return wrap.Error(ctx, err)
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "user_id", userID)
	return nil
}

// Logout clears durable storage and memory. The server-side record is not
// touched.
func (s *Session) Logout(ctx context.Context) error {
	ctx = wrap.WithAction(ctx, types.ActionLogout)

	if err := s.store.Clear(); err != nil {
		return wrap.Error(ctx, err)
	}

	s.mu.Lock()
	s.state = nil
	s.mu.Unlock()

	s.log.Info(ctx, "logged out")
	return nil
}

// IsAuthenticated reports whether a usable session exists. A session whose
// access token has expired reads as unauthenticated without a network call.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil || s.state.UserID == "" {
		return false
	}
	if s.state.AccessToken == "" {
		return true
	}
	return !s.tokenExpired(s.state.AccessToken)
}

// UserID returns the session user id, or "" when unauthenticated.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return ""
	}
	return s.state.UserID
}

// Profile returns the cached profile and whether a non-empty one exists.
func (s *Session) Profile() (models.UserIdentity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil || s.state.Profile == (models.UserIdentity{}) {
		return models.UserIdentity{}, false
	}
	return s.state.Profile, true
}

// tokenExpired reads the exp claim without verifying the signature; the
// client has no signing key and the check is only an optimization to avoid
// doomed requests.
func (s *Session) tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		// Unparseable tokens are passed through; the backend decides.
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(s.now())
}
