package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hpi-packager/internal/types"
)

const testSpec = `
api_version: v1
metadata:
  group: org.acme
  name: widget-plugin
  version: 3.2.1
options:
  file_extension: jpi
  disable_test_harness: true
dependencies:
  core:
    modules:
      - "org.host:core:2.440.1"
  plugins:
    modules:
      - "org.acme:credentials:2.1.0"
    excludes:
      - group: org.acme
        name: shaded
`

func TestSpecFileLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSpec), 0644))

	spec, err := NewSpecFileAdapter().Load(path)
	require.NoError(t, err)
	require.Equal(t, "widget-plugin", spec.Metadata.Name)
	require.Equal(t, "jpi", spec.Options.FileExtension)
	require.True(t, spec.Options.DisableTestHarness)
	require.Len(t, spec.Dependencies[types.RolePlugins].Modules, 1)
	require.Len(t, spec.Dependencies[types.RolePlugins].Excludes, 1)
}

func TestSpecFileUnknownRoleRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.yaml")
	content := testSpec + `
  bogus-role:
    modules:
      - "a:b:1"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := NewSpecFileAdapter().Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bogus-role")
}

func TestSpecFileMissing(t *testing.T) {
	_, err := NewSpecFileAdapter().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
