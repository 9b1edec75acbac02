package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hpi-packager/internal/types"
)

const testIndex = `
modules:
  "org.acme:credentials":
    - version: "2.1.0"
      type: hpi
      dependencies:
        - "org.apache:commons-text:1.11.0"
      file: plugins/credentials-2.1.0.hpi
  "org.apache:commons-text":
    - version: "1.11.0"
      file: libs/commons-text-1.11.0.jar
    - version: "1.10.0"
      file: libs/commons-text-1.10.0.jar
  "org.acme:mailer":
    - version: "1.0.0"
      type: jpi
      dependencies:
        - "org.apache:commons-text:1.10.0"
`

func writeIndex(t *testing.T) *PluginIndexFileAdapter {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "plugin-index.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testIndex), 0644))
	return NewPluginIndexFileAdapter(path)
}

func dep(group, name, version string) types.Dependency {
	return types.Dependency{
		Coordinate: types.Coordinate{Group: group, Name: name, Version: version},
		Transitive: true,
	}
}

func TestPluginIndexResolvesTransitively(t *testing.T) {
	adapter := writeIndex(t)

	artifacts, err := adapter.Resolve(t.Context(), types.RolePlugins, []types.Dependency{
		dep("org.acme", "credentials", "2.1.0"),
	})
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	require.Equal(t, "org.acme:credentials:2.1.0", artifacts[0].Coordinate.String())
	require.Equal(t, "hpi", artifacts[0].Type)
	require.Equal(t, "org.apache:commons-text:1.11.0", artifacts[1].Coordinate.String())
	require.Equal(t, "jar", artifacts[1].Type)

	// Artifact files resolve relative to the index location.
	require.True(t, filepath.IsAbs(artifacts[0].File))
	require.Equal(t, "credentials-2.1.0.hpi", filepath.Base(artifacts[0].File))
}

func TestPluginIndexHighestVersionWinsOnConflict(t *testing.T) {
	adapter := writeIndex(t)

	artifacts, err := adapter.Resolve(t.Context(), types.RolePlugins, []types.Dependency{
		dep("org.acme", "credentials", "2.1.0"), // pulls commons-text 1.11.0
		dep("org.acme", "mailer", "1.0.0"),      // pulls commons-text 1.10.0
	})
	require.NoError(t, err)

	for _, artifact := range artifacts {
		if artifact.Coordinate.Name == "commons-text" {
			require.Equal(t, "1.11.0", artifact.Coordinate.Version)
			return
		}
	}
	t.Fatal("commons-text missing from resolution")
}

func TestPluginIndexNonTransitiveDependencyDoesNotFanOut(t *testing.T) {
	adapter := writeIndex(t)

	artifacts, err := adapter.Resolve(t.Context(), types.RoleProvidedCompile, []types.Dependency{
		{Coordinate: types.Coordinate{Group: "org.acme", Name: "credentials", Version: "2.1.0"}, Transitive: false},
	})
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
}

func TestPluginIndexMissingModuleNamesCoordinateAndRole(t *testing.T) {
	adapter := writeIndex(t)

	_, err := adapter.Resolve(t.Context(), types.RolePlugins, []types.Dependency{
		dep("org.acme", "absent", "1.0.0"),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "org.acme:absent")
	require.Contains(t, err.Error(), "plugins")
}

func TestPluginIndexMissingVersionFails(t *testing.T) {
	adapter := writeIndex(t)

	_, err := adapter.Resolve(t.Context(), types.RoleTestPlugins, []types.Dependency{
		dep("org.acme", "credentials", "9.9.9"),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "9.9.9")
	require.Contains(t, err.Error(), "test-plugins")
}

func TestPluginIndexFileMissing(t *testing.T) {
	adapter := NewPluginIndexFileAdapter(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := adapter.Resolve(t.Context(), types.RolePlugins, nil)
	require.Error(t, err)
}
