package session

import (
	"context"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	wrap "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger/wrapper"
)

// Require is the route guard: it resolves the session user id or reports why
// the caller must redirect to login. Pure read of session state, no side
// effects.
func (s *Session) Require(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil || s.state.UserID == "" {
		return "", wrap.Error(ctx, types.ErrNotAuthenticated)
	}
	if s.state.AccessToken != "" && s.tokenExpired(s.state.AccessToken) {
		return "", wrap.Error(ctx, types.ErrSessionExpired)
	}
	return s.state.UserID, nil
}
