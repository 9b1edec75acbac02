package types

// ScopeLockEntry is one line of the scopes.lock file: a module resolved
// for a role, with its classifier verdict.
type ScopeLockEntry struct {
	Role       RoleName
	Coordinate Coordinate
	Kind       ArtifactKind
}

// ProvidedManifestEntry is one line of the provided.manifest file: a
// rewritten dependency and where it came from.
type ProvidedManifestEntry struct {
	Target     RoleName
	Coordinate Coordinate
	Provenance string
}
