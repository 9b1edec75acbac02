package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validSpec = `
api_version: v1
metadata:
  group: org.acme
  name: widget-plugin
  version: 3.2.1
dependencies:
  plugins:
    modules:
      - "org.acme:credentials:2.1.0"
`

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plugin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateDerivesShortName(t *testing.T) {
	service := NewService()
	result, err := service.Validate(t.Context(), ValidateRequest{SpecPath: writeSpec(t, validSpec)})
	require.NoError(t, err)
	require.Equal(t, "widget-plugin", result.ProjectName)
	require.Equal(t, "widget", result.ShortName)
}

func TestValidateRequiresSpecPath(t *testing.T) {
	service := NewService()
	_, err := service.Validate(t.Context(), ValidateRequest{})
	require.Error(t, err)
}

func TestValidateRejectsMissingGroup(t *testing.T) {
	spec := `
api_version: v1
metadata:
  name: widget
  version: 1.0.0
dependencies: {}
`
	service := NewService()
	_, err := service.Validate(t.Context(), ValidateRequest{SpecPath: writeSpec(t, spec)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "metadata.group")
}

func TestValidateRejectsBadCoordinate(t *testing.T) {
	spec := `
api_version: v1
metadata:
  group: org.acme
  name: widget
  version: 1.0.0
dependencies:
  plugins:
    modules:
      - "not-a-coordinate"
`
	service := NewService()
	_, err := service.Validate(t.Context(), ValidateRequest{SpecPath: writeSpec(t, spec)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "plugins")
}
