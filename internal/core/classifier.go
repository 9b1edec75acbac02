package core

import "hpi-packager/internal/types"

// Classify decides whether a resolved artifact is a host extension or
// an ordinary library. Host extensions are recognized purely by their
// declared packaging type; "hpi" is the legacy tag and "jpi" the
// current one. Pure function of the artifact metadata.
func Classify(artifact types.ResolvedArtifact) types.ArtifactKind {
	switch artifact.Type {
	case types.PackagingTypeHPI, types.PackagingTypeJPI:
		return types.ArtifactKindHostExtension
	default:
		return types.ArtifactKindOrdinaryLibrary
	}
}
