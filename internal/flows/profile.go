package flows

import (
	"context"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/session"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
	wrap "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger/wrapper"
)

// ProfileFlow serves the profile page from the backend, falling back to the
// cached session copy when the fetch fails.
type ProfileFlow struct {
	backend Backend
	session *session.Session
	log     logger.Logger
}

func NewProfileFlow(b Backend, s *session.Session, log logger.Logger) *ProfileFlow {
	return &ProfileFlow{backend: b, session: s, log: log}
}

// Get returns the freshest profile available. The fetched copy simply
// overwrites nothing: the session cache is only updated on login.
func (f *ProfileFlow) Get(ctx context.Context) (models.UserIdentity, error) {
	ctx = wrap.WithAction(ctx, types.ActionFetchProfile)

	userID, err := f.session.Require(ctx)
	if err != nil {
		return models.UserIdentity{}, err
	}
	ctx = wrap.WithUserID(ctx, userID)

	dto, err := f.backend.GetUserInfo(ctx, userID)
	if err != nil {
		if cached, ok := f.session.Profile(); ok {
			f.log.Warn(ctx, "profile fetch failed, serving cached copy")
			return cached, nil
		}
		return models.UserIdentity{}, wrap.Error(ctx, err)
	}

	profile := profileFromDTO(*dto)
	if profile.UserID == "" {
		profile.UserID = userID
	}
	return profile, nil
}
