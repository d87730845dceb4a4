package session_test

import (
	"testing"

	"github.com/stitchwork/go-erp-client/session"
	"github.com/stitchwork/go-erp-client/users"
	"github.com/stretchr/testify/require"
)

func adminUser() *users.User {
	return &users.User{
		ID:    "user-1",
		Email: "a@b.com",
		Role:  users.RoleAdmin,
	}
}

func TestInitialState(t *testing.T) {
	st := session.Initial()
	require.True(t, st.IsCheckingAuth)
	require.False(t, st.IsAuthenticated)
	require.Nil(t, st.User)
}

func TestCheckSessionTransitions(t *testing.T) {
	st := session.Initial()

	// Starting a check while bootstrapping is idempotent.
	next, effects := session.Reduce(st, session.CheckStarted{})
	require.Equal(t, st, next)
	require.Empty(t, effects)

	user := adminUser()
	next, effects = session.Reduce(next, session.CheckSucceeded{User: user})
	require.True(t, next.IsAuthenticated)
	require.False(t, next.IsCheckingAuth)
	require.Equal(t, user, next.User)
	require.Equal(t, []session.Effect{session.CacheUser{User: user}}, effects)
}

func TestCheckFailedIsSilent(t *testing.T) {
	next, effects := session.Reduce(session.Initial(), session.CheckFailed{})
	require.False(t, next.IsAuthenticated)
	require.False(t, next.IsCheckingAuth)
	require.Empty(t, next.LastError)
	require.Empty(t, effects)
}

func TestLoginSuccessPersistsTokenPair(t *testing.T) {
	st, _ := session.Reduce(session.Initial(), session.CheckFailed{})

	st, effects := session.Reduce(st, session.LoginStarted{})
	require.True(t, st.LoggingIn)
	require.Empty(t, effects)

	user := adminUser()
	st, effects = session.Reduce(st, session.LoginSucceeded{
		User:         user,
		AccessToken:  "T1",
		RefreshToken: "R1",
	})
	require.True(t, st.IsAuthenticated)
	require.False(t, st.LoggingIn)
	require.Equal(t, user, st.User)
	require.Equal(t, []session.Effect{
		session.PersistTokens{AccessToken: "T1", RefreshToken: "R1"},
		session.CacheUser{User: user},
	}, effects)
}

func TestLoginFailureCarriesMessage(t *testing.T) {
	st, _ := session.Reduce(session.Initial(), session.LoginStarted{})
	st, effects := session.Reduce(st, session.LoginFailed{Message: "invalid credentials"})
	require.False(t, st.IsAuthenticated)
	require.False(t, st.LoggingIn)
	require.Equal(t, "invalid credentials", st.LastError)
	require.Empty(t, effects)

	st, _ = session.Reduce(st, session.ErrorCleared{})
	require.Empty(t, st.LastError)
}

func TestLogoutResetsFromAnyState(t *testing.T) {
	st, _ := session.Reduce(session.Initial(), session.CheckSucceeded{User: adminUser()})
	st, effects := session.Reduce(st, session.LoggedOut{})
	require.False(t, st.IsAuthenticated)
	require.False(t, st.IsCheckingAuth)
	require.Nil(t, st.User)
	require.Empty(t, st.LastError)
	require.Equal(t, []session.Effect{session.ClearCredentials{}}, effects)
}

func TestLogoutWhenAlreadyLoggedOut(t *testing.T) {
	st, _ := session.Reduce(session.Initial(), session.CheckFailed{})
	st, effects := session.Reduce(st, session.LoggedOut{})
	require.False(t, st.IsAuthenticated)
	require.Empty(t, st.LastError)
	require.Equal(t, []session.Effect{session.ClearCredentials{}}, effects)
}

func TestRefreshFailureActsLikeLogoutPlusRedirect(t *testing.T) {
	st, _ := session.Reduce(session.Initial(), session.CheckSucceeded{User: adminUser()})
	st, effects := session.Reduce(st, session.RefreshFailed{})
	require.False(t, st.IsAuthenticated)
	require.False(t, st.IsCheckingAuth)
	require.Nil(t, st.User)
	require.Equal(t, []session.Effect{
		session.ClearCredentials{},
		session.RedirectToLogin{},
	}, effects)
}

func TestUserUpdatedOnlyWhileAuthenticated(t *testing.T) {
	updated := &users.User{ID: "user-1", Email: "a@b.com", Role: users.RoleManager}

	// Ignored while unauthenticated.
	st, _ := session.Reduce(session.Initial(), session.CheckFailed{})
	next, effects := session.Reduce(st, session.UserUpdated{User: updated})
	require.Equal(t, st, next)
	require.Empty(t, effects)

	// Replaces the profile while authenticated.
	st, _ = session.Reduce(session.Initial(), session.CheckSucceeded{User: adminUser()})
	next, effects = session.Reduce(st, session.UserUpdated{User: updated})
	require.True(t, next.IsAuthenticated)
	require.Equal(t, updated, next.User)
	require.Equal(t, []session.Effect{session.CacheUser{User: updated}}, effects)
}

func TestPasswordFlowsAreIndependent(t *testing.T) {
	st, _ := session.Reduce(session.Initial(), session.CheckSucceeded{User: adminUser()})

	st, _ = session.Reduce(st, session.FlowStarted{Kind: session.FlowForgotPassword})
	require.True(t, st.Flow(session.FlowForgotPassword).Loading)
	require.True(t, st.IsAuthenticated)

	st, _ = session.Reduce(st, session.FlowFailed{Kind: session.FlowForgotPassword, Message: "unknown email"})
	require.Equal(t, "unknown email", st.Flow(session.FlowForgotPassword).Error)
	require.False(t, st.Flow(session.FlowForgotPassword).Loading)

	st, _ = session.Reduce(st, session.FlowStarted{Kind: session.FlowChangePassword})
	st, _ = session.Reduce(st, session.FlowSucceeded{Kind: session.FlowChangePassword})
	require.True(t, st.Flow(session.FlowChangePassword).Succeeded)
	// The other flow's triple is untouched, and the session stays
	// authenticated throughout.
	require.Equal(t, "unknown email", st.Flow(session.FlowForgotPassword).Error)
	require.True(t, st.IsAuthenticated)
	require.Empty(t, st.LastError)
}

func TestAuthenticatedImpliesUser(t *testing.T) {
	events := []session.Event{
		session.AppStarted{},
		session.CheckStarted{},
		session.CheckSucceeded{User: adminUser()},
		session.LoginStarted{},
		session.LoginSucceeded{User: adminUser(), AccessToken: "T1", RefreshToken: "R1"},
		session.LoginFailed{Message: "nope"},
		session.CheckSucceeded{User: nil},
		session.LoggedOut{},
		session.RefreshFailed{},
		session.UserUpdated{User: nil},
		session.ErrorCleared{},
	}

	st := session.Initial()
	for _, ev := range events {
		st, _ = session.Reduce(st, ev)
		if st.IsAuthenticated {
			require.NotNil(t, st.User, "authenticated state must carry a user after %T", ev)
		}
	}
}
