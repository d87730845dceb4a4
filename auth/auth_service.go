// Package auth glues the HTTP client and the session state machine into
// the login, logout, session-check and password-flow operations the rest of
// the application calls.
package auth

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stitchwork/go-erp-client/client"
	"github.com/stitchwork/go-erp-client/credentials"
	"github.com/stitchwork/go-erp-client/session"
	"github.com/stitchwork/go-erp-client/users"
)

const (
	loginPath          = "/auth/login"
	logoutPath         = "/auth/logout"
	mePath             = "/auth/me"
	forgotPasswordPath = "/auth/forgot-password"
	resetPasswordPath  = "/auth/reset-password"
	changePasswordPath = "/auth/change-password"
)

// Deps holds all collaborator dependencies for the Service.
type Deps struct {
	Client   *client.Client   // Authenticated HTTP client
	Sessions *session.Manager // Session state machine
	Store    credentials.Store
}

// Service drives the session state machine from the auth endpoints.
type Service struct {
	deps   Deps
	logger zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService initializes a new Service with required dependencies.
func NewService(deps Deps, options ...ServiceOption) (*Service, error) {
	if deps.Client == nil {
		return nil, errors.New("[NewService] Client is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("[NewService] Sessions manager is required")
	}
	if deps.Store == nil {
		return nil, errors.New("[NewService] credentials Store is required")
	}

	service := &Service{
		deps:   deps,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// loginResponse is the payload of a successful POST /auth/login.
type loginResponse struct {
	User         *users.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// Bootstrap runs the initial session check. With no stored credentials it
// settles to unauthenticated without a network call; otherwise it asks
// /auth/me whether the stored session is still good. A failed check is the
// normal "not logged in yet" path and is not an error.
func (s *Service) Bootstrap(ctx context.Context) session.State {
	s.deps.Sessions.Apply(session.AppStarted{})

	if s.deps.Store.AccessToken() == "" && s.deps.Store.RefreshToken() == "" {
		return s.deps.Sessions.Apply(session.CheckFailed{})
	}

	s.deps.Sessions.Apply(session.CheckStarted{})
	var user users.User
	if _, err := s.deps.Client.Get(ctx, mePath, &client.RequestOptions{Out: &user}); err != nil {
		s.logger.Debug().Err(err).Msg("session check failed")
		return s.deps.Sessions.Apply(session.CheckFailed{})
	}
	return s.deps.Sessions.Apply(session.CheckSucceeded{User: &user})
}

// Login authenticates with email and password. On success the session
// becomes authenticated and the token pair is persisted.
func (s *Service) Login(ctx context.Context, email, password string) (*users.User, error) {
	s.deps.Sessions.Apply(session.LoginStarted{})

	var resp loginResponse
	_, err := s.deps.Client.Post(ctx, loginPath, &client.RequestOptions{
		Body: map[string]string{"email": email, "password": password},
		Out:  &resp,
	})
	if err != nil {
		message := errorMessage(err)
		s.deps.Sessions.Apply(session.LoginFailed{Message: message})
		return nil, errors.Wrap(err, "[Service.Login] login request")
	}
	if resp.User == nil || resp.AccessToken == "" || resp.RefreshToken == "" {
		s.deps.Sessions.Apply(session.LoginFailed{Message: "malformed login response"})
		return nil, errors.New("[Service.Login] malformed login response")
	}

	s.deps.Sessions.Apply(session.LoginSucceeded{
		User:         resp.User,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	s.logger.Info().Str("email", resp.User.Email).Msg("logged in")
	return resp.User, nil
}

// Logout ends the session. The server call is best-effort; the local
// session resets regardless, and logging out while already logged out is a
// no-op.
func (s *Service) Logout(ctx context.Context) {
	if s.deps.Store.AccessToken() != "" {
		if _, err := s.deps.Client.Post(ctx, logoutPath, nil); err != nil {
			s.logger.Debug().Err(err).Msg("server logout failed, resetting locally")
		}
	}
	s.deps.Sessions.Apply(session.LoggedOut{})
}

// UpdateProfile saves profile changes and replaces the user on the session.
func (s *Service) UpdateProfile(ctx context.Context, user *users.User) (*users.User, error) {
	var updated users.User
	_, err := s.deps.Client.Put(ctx, mePath, &client.RequestOptions{
		Body: user,
		Out:  &updated,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[Service.UpdateProfile] update request")
	}
	s.deps.Sessions.Apply(session.UserUpdated{User: &updated})
	return &updated, nil
}

// ClearError drops the last login error from the session state.
func (s *Service) ClearError() {
	s.deps.Sessions.Apply(session.ErrorCleared{})
}

// ForgotPassword starts the password recovery flow for an email address.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	return s.runFlow(ctx, session.FlowForgotPassword, forgotPasswordPath, map[string]string{
		"email": email,
	})
}

// ResetPassword completes password recovery with the emailed token.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.runFlow(ctx, session.FlowResetPassword, resetPasswordPath, map[string]string{
		"token":    token,
		"password": newPassword,
	})
}

// ChangePassword changes the password of the logged-in user.
func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return s.runFlow(ctx, session.FlowChangePassword, changePasswordPath, map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	})
}

// runFlow drives one password flow's loading/success/error triple. These
// flows never touch the authenticated state.
func (s *Service) runFlow(ctx context.Context, kind session.FlowKind, path string, body map[string]string) error {
	s.deps.Sessions.Apply(session.FlowStarted{Kind: kind})
	if _, err := s.deps.Client.Post(ctx, path, &client.RequestOptions{Body: body}); err != nil {
		s.deps.Sessions.Apply(session.FlowFailed{Kind: kind, Message: errorMessage(err)})
		return errors.Wrapf(err, "[Service.runFlow] %s", kind)
	}
	s.deps.Sessions.Apply(session.FlowSucceeded{Kind: kind})
	return nil
}

// errorMessage extracts the user-facing message from a normalized error.
func errorMessage(err error) string {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.IsNetworkError() {
			return "connection failed"
		}
		if httpErr.Status == http.StatusUnauthorized {
			return "invalid credentials"
		}
		return httpErr.Message
	}
	return "request failed"
}
