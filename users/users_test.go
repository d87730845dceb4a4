package users_test

import (
	"testing"

	"github.com/stitchwork/go-erp-client/users"
	"github.com/stretchr/testify/require"
)

func TestHasRole(t *testing.T) {
	user := &users.User{Role: users.RoleSales}

	require.True(t, user.HasRole(users.RoleSales))
	require.True(t, user.HasRole(users.RoleManager, users.RoleSales))
	require.False(t, user.HasRole(users.RoleAdmin))
	// An empty role set means no restriction.
	require.True(t, user.HasRole())
}

func TestRoleValid(t *testing.T) {
	require.True(t, users.RoleAdmin.Valid())
	require.True(t, users.RoleProduction.Valid())
	require.False(t, users.RoleType("INTERN").Valid())
	require.False(t, users.RoleType("").Valid())
}

func TestFullName(t *testing.T) {
	require.Equal(t, "Mei Lin", (&users.User{FirstName: "Mei", LastName: "Lin"}).FullName())
	require.Equal(t, "Mei", (&users.User{FirstName: "Mei"}).FullName())
	require.Equal(t, "Lin", (&users.User{LastName: "Lin"}).FullName())
}
