package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"hpi-packager/internal/types"
)

func TestOutputRoundTrip(t *testing.T) {
	dir := t.TempDir()
	output := NewOutputFileAdapter(dir)
	reader := NewOutputReaderAdapter()

	lock := []types.ScopeLockEntry{
		{Role: types.RolePlugins, Coordinate: types.Coordinate{Group: "org.acme", Name: "credentials", Version: "2.1.0"}, Kind: types.ArtifactKindHostExtension},
		{Role: types.RoleCore, Coordinate: types.Coordinate{Group: "org.host", Name: "core", Version: "2.440.1"}, Kind: types.ArtifactKindOrdinaryLibrary},
	}
	require.NoError(t, output.WriteScopesLock(lock))

	provided := []types.ProvidedManifestEntry{
		{
			Target:     types.RoleProvidedCompile,
			Coordinate: types.Coordinate{Group: "org.acme", Name: "credentials", Version: "2.1.0"},
			Provenance: "module org.acme:credentials present in role plugins",
		},
	}
	require.NoError(t, output.WriteProvidedManifest(provided))
	require.NoError(t, output.WriteManifestFingerprint("abc123"))

	gotLock, err := reader.ReadScopesLock(dir)
	require.NoError(t, err)
	// Written sorted by role then coordinate.
	wantLock := []types.ScopeLockEntry{lock[1], lock[0]}
	if diff := cmp.Diff(wantLock, gotLock); diff != "" {
		t.Fatalf("scopes.lock round trip (-want +got):\n%s", diff)
	}

	gotProvided, err := reader.ReadProvidedManifest(dir)
	require.NoError(t, err)
	if diff := cmp.Diff(provided, gotProvided); diff != "" {
		t.Fatalf("provided.manifest round trip (-want +got):\n%s", diff)
	}

	fingerprint, err := reader.ReadManifestFingerprint(dir)
	require.NoError(t, err)
	require.Equal(t, "abc123", fingerprint)
}

func TestOutputScopesLockDeterministic(t *testing.T) {
	dir := t.TempDir()
	output := NewOutputFileAdapter(dir)

	entries := []types.ScopeLockEntry{
		{Role: types.RolePlugins, Coordinate: types.Coordinate{Group: "b", Name: "b", Version: "1"}, Kind: types.ArtifactKindHostExtension},
		{Role: types.RolePlugins, Coordinate: types.Coordinate{Group: "a", Name: "a", Version: "1"}, Kind: types.ArtifactKindHostExtension},
	}
	require.NoError(t, output.WriteScopesLock(entries))
	first, err := os.ReadFile(filepath.Join(dir, "scopes.lock"))
	require.NoError(t, err)

	reversed := []types.ScopeLockEntry{entries[1], entries[0]}
	require.NoError(t, output.WriteScopesLock(reversed))
	second, err := os.ReadFile(filepath.Join(dir, "scopes.lock"))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestOutputReaderMissingDir(t *testing.T) {
	reader := NewOutputReaderAdapter()
	_, err := reader.ReadScopesLock(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
