// Package session tracks the client's authentication state as a pure state
// machine: a reducer maps (State, Event) to a new State plus a list of side
// effects, and a Manager executes those effects against injected
// collaborators.
package session

import (
	"github.com/stitchwork/go-erp-client/users"
)

// FlowKind identifies one of the standalone password flows. Their
// loading/success/error triples are independent of the authenticated state.
type FlowKind string

const (
	FlowForgotPassword FlowKind = "forgot_password"
	FlowResetPassword  FlowKind = "reset_password"
	FlowChangePassword FlowKind = "change_password"
)

// FlowState is the loading/success/error triple for a password flow.
type FlowState struct {
	Loading   bool
	Succeeded bool
	Error     string
}

// State is the client's view of the current session.
//
// Invariant: IsAuthenticated implies User != nil. IsCheckingAuth is true
// only between process start and the first settled session check.
type State struct {
	User            *users.User
	IsAuthenticated bool
	IsCheckingAuth  bool
	LoggingIn       bool
	LastError       string
	Flows           map[FlowKind]FlowState
}

// Initial returns the state at process start, before the bootstrap
// session check has settled.
func Initial() State {
	return State{IsCheckingAuth: true}
}

// Flow returns the triple for a password flow, zero if never started.
func (s State) Flow(kind FlowKind) FlowState {
	return s.Flows[kind]
}

// withFlow returns a copy of s with one flow triple replaced. The Flows map
// is copied so reduced states never share mutable data.
func (s State) withFlow(kind FlowKind, fs FlowState) State {
	flows := make(map[FlowKind]FlowState, len(s.Flows)+1)
	for k, v := range s.Flows {
		flows[k] = v
	}
	flows[kind] = fs
	s.Flows = flows
	return s
}
