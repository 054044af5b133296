package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Admin ")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, role)
	require.True(t, role.IsAdmin())

	role, err = ParseRole("member")
	require.NoError(t, err)
	require.False(t, role.IsAdmin())

	_, err = ParseRole("owner")
	require.Error(t, err)
}
