package session

import (
	"github.com/stitchwork/go-erp-client/users"
)

// Event is a session transition trigger. The concrete event types below are
// the only implementations.
type Event interface {
	isEvent()
}

// AppStarted begins the bootstrap session check.
type AppStarted struct{}

// CheckStarted marks a session check in progress. Idempotent while the
// bootstrap check is already running.
type CheckStarted struct{}

// CheckSucceeded carries the authoritative profile from /auth/me.
type CheckSucceeded struct {
	User *users.User
}

// CheckFailed ends the bootstrap check without a session. This is the
// normal "not logged in yet" path, so no error is surfaced.
type CheckFailed struct{}

// LoginStarted marks a login request in flight.
type LoginStarted struct{}

// LoginSucceeded carries the profile and token pair from a successful login.
type LoginSucceeded struct {
	User         *users.User
	AccessToken  string
	RefreshToken string
}

// LoginFailed carries the server's rejection message.
type LoginFailed struct {
	Message string
}

// LoggedOut resets the session from any state.
type LoggedOut struct{}

// RefreshFailed is raised by the HTTP client when a token refresh is
// unrecoverable. It behaves like a logout plus a redirect to login.
type RefreshFailed struct{}

// UserUpdated replaces the profile. Only valid while authenticated;
// ignored otherwise.
type UserUpdated struct {
	User *users.User
}

// ErrorCleared drops the last error without changing anything else.
type ErrorCleared struct{}

// FlowStarted begins a password flow.
type FlowStarted struct {
	Kind FlowKind
}

// FlowSucceeded settles a password flow successfully.
type FlowSucceeded struct {
	Kind FlowKind
}

// FlowFailed settles a password flow with an error message.
type FlowFailed struct {
	Kind    FlowKind
	Message string
}

func (AppStarted) isEvent()     {}
func (CheckStarted) isEvent()   {}
func (CheckSucceeded) isEvent() {}
func (CheckFailed) isEvent()    {}
func (LoginStarted) isEvent()   {}
func (LoginSucceeded) isEvent() {}
func (LoginFailed) isEvent()    {}
func (LoggedOut) isEvent()      {}
func (RefreshFailed) isEvent()  {}
func (UserUpdated) isEvent()    {}
func (ErrorCleared) isEvent()   {}
func (FlowStarted) isEvent()    {}
func (FlowSucceeded) isEvent()  {}
func (FlowFailed) isEvent()     {}
