package types

// RoleName identifies one of the fixed dependency roles.
type RoleName string

const (
	RoleCore            RoleName = "core"
	RolePlugins         RoleName = "plugins"
	RoleOptionalPlugins RoleName = "optional-plugins"
	RoleServerPlugins   RoleName = "server-plugins"
	RoleTestPlugins     RoleName = "test-plugins"
	RoleWar             RoleName = "war"

	// Target roles that rewritten dependencies land in. They carry the
	// provided semantics: on the compile (or test) classpath, excluded
	// from the assembled archive.
	RoleProvidedCompile RoleName = "provided-compile"
	RoleProvidedTest    RoleName = "provided-test"
)

type Visibility string

const (
	VisibilityHidden  Visibility = "hidden"
	VisibilityExposed Visibility = "exposed"
)

// ArtifactKind is the classifier verdict for a resolved artifact.
type ArtifactKind string

const (
	ArtifactKindHostExtension   ArtifactKind = "host-extension"
	ArtifactKindOrdinaryLibrary ArtifactKind = "ordinary-library"
)

// Packaging types recognized as host extensions. "hpi" is the legacy
// name, "jpi" the current one; both mark the same archive format.
const (
	PackagingTypeHPI = "hpi"
	PackagingTypeJPI = "jpi"
	PackagingTypeJar = "jar"
)

// Accepted archive file extensions, in preference order.
const (
	FileExtensionHPI = "hpi"
	FileExtensionJPI = "jpi"
)
