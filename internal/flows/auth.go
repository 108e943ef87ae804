package flows

import (
	"context"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/adapter/backend"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/session"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger"
	wrap "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger/wrapper"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/validator"
)

// AuthFlow drives login and signup: credentials in, an established session
// out.
type AuthFlow struct {
	gate
	backend Backend
	session *session.Session
	log     logger.Logger
}

func NewAuthFlow(b Backend, s *session.Session, log logger.Logger) *AuthFlow {
	return &AuthFlow{backend: b, session: s, log: log}
}

// SignupForm carries the signup page's fields.
type SignupForm struct {
	FullName         string
	EmailID          string
	Password         string
	PhoneNumber      string
	OrganisationName string
}

// Login authenticates, fetches the profile, and establishes the session. On
// success the caller navigates to the dashboard.
func (f *AuthFlow) Login(ctx context.Context, emailID, password string) (retErr error) {
	if err := f.begin(); err != nil {
		return err
	}
	defer func() { f.finish(retErr) }()

	ctx = wrap.WithAction(ctx, types.ActionLogin)

	v := validator.New()
	v.Check(emailID != "", "email", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if v.Valid() {
		v.Check(validator.Matches(emailID, validator.EmailRX), "email", "must be a valid email address")
	}
	if !v.Valid() {
		return wrap.Error(ctx, validationError(v))
	}

	resp, err := f.backend.Login(ctx, backend.LoginRequestDTO{EmailID: emailID, Password: password})
	if err != nil {
		return wrap.Error(ctx, err)
	}
	if !resp.LoginSuccess || resp.UserID == "" {
		return wrap.Error(ctx, serverFailure(resp.ErrMsg))
	}

	ctx = wrap.WithUserID(ctx, resp.UserID)

	// The profile fetch completes the session; a login without a profile is
	// not a login.
	info, err := f.backend.GetUserInfo(ctx, resp.UserID)
	if err != nil {
		return wrap.Error(ctx, err)
	}

	profile := profileFromDTO(*info)
	profile.UserID = resp.UserID
	if err := f.session.Login(ctx, resp.UserID, profile, ""); err != nil {
		return wrap.Error(ctx, err)
	}

	return nil
}

// Signup registers a new account and logs it in.
func (f *AuthFlow) Signup(ctx context.Context, form SignupForm) (retErr error) {
	if err := f.begin(); err != nil {
		return err
	}
	defer func() { f.finish(retErr) }()

	ctx = wrap.WithAction(ctx, types.ActionSignup)

	v := validator.New()
	v.Check(form.FullName != "", "fullName", "must be provided")
	v.Check(form.EmailID != "", "email", "must be provided")
	v.Check(form.Password != "", "password", "must be provided")
	v.Check(form.PhoneNumber != "", "phoneNumber", "must be provided")
	if form.EmailID != "" {
		v.Check(validator.Matches(form.EmailID, validator.EmailRX), "email", "must be a valid email address")
	}
	if !v.Valid() {
		return wrap.Error(ctx, validationError(v))
	}

	resp, err := f.backend.Signup(ctx, backend.UserInfoDTO{
		FullName:         form.FullName,
		EmailID:          form.EmailID,
		Password:         form.Password,
		PhoneNumber:      form.PhoneNumber,
		OrganisationName: form.OrganisationName,
	})
	if err != nil {
		return wrap.Error(ctx, err)
	}
	if !resp.SignUpSuccess || resp.UserID == "" {
		return wrap.Error(ctx, serverFailure(resp.ErrMsg))
	}

	profile := models.UserIdentity{
		UserID:           resp.UserID,
		FullName:         form.FullName,
		EmailID:          form.EmailID,
		PhoneNumber:      form.PhoneNumber,
		OrganisationName: form.OrganisationName,
	}
	if err := f.session.Login(ctx, resp.UserID, profile, ""); err != nil {
		return wrap.Error(ctx, err)
	}

	return nil
}
