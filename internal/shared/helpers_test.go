package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	coord, err := ParseCoordinate(" org.acme:widget:1.2.3 ")
	require.NoError(t, err)
	require.Equal(t, "org.acme", coord.Group)
	require.Equal(t, "widget", coord.Name)
	require.Equal(t, "1.2.3", coord.Version)

	for _, bad := range []string{"", "org.acme", "org.acme:widget", "a:b:c:d", "::1"} {
		_, err := ParseCoordinate(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestParseModuleID(t *testing.T) {
	id, err := ParseModuleID("org.acme:widget")
	require.NoError(t, err)
	require.Equal(t, "org.acme:widget", id.String())

	for _, bad := range []string{"", "org.acme", "a:b:c", ":x"} {
		_, err := ParseModuleID(bad)
		require.Error(t, err, "input %q", bad)
	}
}
