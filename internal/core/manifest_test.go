package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hpi-packager/internal/types"
)

func testSpec() types.ProjectSpec {
	return types.ProjectSpec{
		APIVersion: "v1",
		Metadata: types.Metadata{
			Group:       "org.acme",
			Name:        "widget-plugin",
			Version:     "3.2.1",
			Description: "Widget support",
		},
	}
}

func TestManifestAssembleAttributes(t *testing.T) {
	assembler := NewManifestAssembler()
	attrs, err := assembler.Assemble(testSpec(), "widget")
	require.NoError(t, err)

	shortName, ok := attrs.Get("Short-Name")
	require.True(t, ok)
	require.Equal(t, "widget", shortName)
	version, ok := attrs.Get("Plugin-Version")
	require.True(t, ok)
	require.Equal(t, "3.2.1", version)
	group, ok := attrs.Get("Group-Id")
	require.True(t, ok)
	require.Equal(t, "org.acme", group)
}

func TestManifestAssembleRequiresShortNameAndVersion(t *testing.T) {
	assembler := NewManifestAssembler()

	_, err := assembler.Assemble(testSpec(), "")
	require.Error(t, err)

	spec := testSpec()
	spec.Metadata.Version = ""
	_, err = assembler.Assemble(spec, "widget")
	require.Error(t, err)
}

func TestManifestFingerprintIgnoresOrder(t *testing.T) {
	assembler := NewManifestAssembler()
	a := types.ManifestAttributes{
		{Key: "Short-Name", Value: "widget"},
		{Key: "Plugin-Version", Value: "1.0.0"},
	}
	b := types.ManifestAttributes{
		{Key: "Plugin-Version", Value: "1.0.0"},
		{Key: "Short-Name", Value: "widget"},
	}
	require.Equal(t, assembler.Fingerprint(a), assembler.Fingerprint(b))
}

func TestManifestFingerprintTracksValues(t *testing.T) {
	assembler := NewManifestAssembler()
	a := types.ManifestAttributes{{Key: "Plugin-Version", Value: "1.0.0"}}
	b := types.ManifestAttributes{{Key: "Plugin-Version", Value: "1.0.1"}}
	require.NotEqual(t, assembler.Fingerprint(a), assembler.Fingerprint(b))
}
