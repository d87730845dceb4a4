package session

import (
	"github.com/stitchwork/go-erp-client/users"
)

// Effect is a side effect requested by the reducer. The reducer itself
// performs no I/O; the Manager (or a test) executes effects after the
// transition.
type Effect interface {
	isEffect()
}

// PersistTokens asks for both tokens to be written to the credential store.
type PersistTokens struct {
	AccessToken  string
	RefreshToken string
}

// ClearCredentials asks for tokens and cached profile to be removed.
type ClearCredentials struct{}

// RedirectToLogin asks for a full reset to the login entry point.
type RedirectToLogin struct{}

// CacheUser asks for the profile to be cached for optimistic UI.
type CacheUser struct {
	User *users.User
}

func (PersistTokens) isEffect()    {}
func (ClearCredentials) isEffect() {}
func (RedirectToLogin) isEffect()  {}
func (CacheUser) isEffect()        {}

// Reduce applies an event to a state and returns the new state plus the
// side effects the transition requires. It is pure: no I/O, no mutation of
// the input state.
func Reduce(state State, event Event) (State, []Effect) {
	switch ev := event.(type) {
	case AppStarted:
		state.IsCheckingAuth = true
		return state, nil

	case CheckStarted:
		// Idempotent while the bootstrap check is already in flight.
		return state, nil

	case CheckSucceeded:
		state.User = ev.User
		state.IsAuthenticated = ev.User != nil
		state.IsCheckingAuth = false
		state.LastError = ""
		return state, []Effect{CacheUser{User: ev.User}}

	case CheckFailed:
		// Normal "not logged in yet" path: silent.
		state.User = nil
		state.IsAuthenticated = false
		state.IsCheckingAuth = false
		return state, nil

	case LoginStarted:
		state.LoggingIn = true
		state.LastError = ""
		return state, nil

	case LoginSucceeded:
		state.User = ev.User
		state.IsAuthenticated = ev.User != nil
		state.IsCheckingAuth = false
		state.LoggingIn = false
		state.LastError = ""
		return state, []Effect{
			PersistTokens{AccessToken: ev.AccessToken, RefreshToken: ev.RefreshToken},
			CacheUser{User: ev.User},
		}

	case LoginFailed:
		state.User = nil
		state.IsAuthenticated = false
		state.IsCheckingAuth = false
		state.LoggingIn = false
		state.LastError = ev.Message
		return state, nil

	case LoggedOut:
		flows := state.Flows
		state = State{Flows: flows}
		return state, []Effect{ClearCredentials{}}

	case RefreshFailed:
		flows := state.Flows
		state = State{Flows: flows}
		return state, []Effect{ClearCredentials{}, RedirectToLogin{}}

	case UserUpdated:
		if !state.IsAuthenticated || ev.User == nil {
			return state, nil
		}
		state.User = ev.User
		return state, []Effect{CacheUser{User: ev.User}}

	case ErrorCleared:
		state.LastError = ""
		return state, nil

	case FlowStarted:
		return state.withFlow(ev.Kind, FlowState{Loading: true}), nil

	case FlowSucceeded:
		return state.withFlow(ev.Kind, FlowState{Succeeded: true}), nil

	case FlowFailed:
		return state.withFlow(ev.Kind, FlowState{Error: ev.Message}), nil
	}

	return state, nil
}
