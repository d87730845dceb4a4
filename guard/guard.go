// Package guard decides what to render for a navigation to a protected
// destination, given the current session state and the destination's
// required roles. It is pure and holds no state of its own.
package guard

import (
	"github.com/stitchwork/go-erp-client/session"
	"github.com/stitchwork/go-erp-client/users"
)

// Decision is the outcome of evaluating a navigation.
type Decision int

const (
	// DecisionLoading renders a placeholder while the bootstrap session
	// check is still in flight. Never a redirect.
	DecisionLoading Decision = iota
	// DecisionLogin redirects to the login entry point.
	DecisionLogin
	// DecisionForbidden redirects to the forbidden page. An authenticated
	// user with the wrong role is never sent to login.
	DecisionForbidden
	// DecisionAllow renders the requested destination.
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionLogin:
		return "login"
	case DecisionForbidden:
		return "forbidden"
	case DecisionAllow:
		return "allow"
	}
	return "unknown"
}

// Result carries the decision plus, for login redirects, the originally
// requested location so the caller can return there after login.
type Result struct {
	Decision Decision
	ReturnTo string
}

// Evaluate runs the decision table in priority order:
//
//  1. bootstrap check still running -> loading placeholder
//  2. not authenticated -> login, preserving the requested location
//  3. required roles set and the user's role not among them -> forbidden
//  4. otherwise -> allow
//
// An empty required set means any authenticated user may pass.
func Evaluate(st session.State, required []users.RoleType, requested string) Result {
	if st.IsCheckingAuth {
		return Result{Decision: DecisionLoading}
	}
	if !st.IsAuthenticated || st.User == nil {
		return Result{Decision: DecisionLogin, ReturnTo: requested}
	}
	if !st.User.HasRole(required...) {
		return Result{Decision: DecisionForbidden}
	}
	return Result{Decision: DecisionAllow}
}
