package service

import (
	"testing"

	"safe-radius/internal/model"

	"github.com/stretchr/testify/require"
)

func TestIsAllowed(t *testing.T) {
	cases := []struct {
		op    Operation
		user  bool
		owner bool
		admin bool
	}{
		{OpSubmitPOI, false, true, true},
		{OpViewOwnPOIs, false, true, true},
		{OpSearchPOIs, true, true, true},
		{OpViewAllPOIs, false, false, true},
		{OpDeletePOI, false, false, true},
		{OpListUsers, false, false, true},
		{OpChangeUserRole, false, false, true},
		{OpViewStats, false, false, true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.user, IsAllowed(model.RoleUser, tc.op), "user %s", tc.op)
		require.Equal(t, tc.owner, IsAllowed(model.RoleOwner, tc.op), "owner %s", tc.op)
		require.Equal(t, tc.admin, IsAllowed(model.RoleAdmin, tc.op), "admin %s", tc.op)
	}
}

func TestIsAllowedUnknown(t *testing.T) {
	require.False(t, IsAllowed(model.Role("ghost"), OpSearchPOIs))
	require.False(t, IsAllowed(model.RoleAdmin, Operation("unknown")))
}

func TestValidateRoleChange(t *testing.T) {
	// admin demoting someone else is the table's business, not the guard's
	require.NoError(t, ValidateRoleChange(1, 2, model.RoleUser))
	require.NoError(t, ValidateRoleChange(1, 2, model.RoleOwner))

	// admin keeping their own admin role is a no-op
	require.NoError(t, ValidateRoleChange(1, 1, model.RoleAdmin))

	// self-demotion is always rejected
	require.ErrorIs(t, ValidateRoleChange(1, 1, model.RoleUser), ErrSelfDemotion)
	require.ErrorIs(t, ValidateRoleChange(1, 1, model.RoleOwner), ErrSelfDemotion)
}
