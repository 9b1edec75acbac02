package ports

import "hpi-packager/internal/types"

// OutputPort writes the deterministic resolve-run outputs consumed by
// inspect and by downstream build steps.
type OutputPort interface {
	WriteScopesLock(entries []types.ScopeLockEntry) error
	WriteProvidedManifest(entries []types.ProvidedManifestEntry) error
	WriteManifestFingerprint(fingerprint string) error
}

// OutputReaderPort reads a resolve output directory back.
type OutputReaderPort interface {
	ReadScopesLock(dir string) ([]types.ScopeLockEntry, error)
	ReadProvidedManifest(dir string) ([]types.ProvidedManifestEntry, error)
	ReadManifestFingerprint(dir string) (string, error)
}
