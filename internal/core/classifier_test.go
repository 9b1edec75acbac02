package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hpi-packager/internal/types"
)

func TestClassifyRecognizesBothExtensionTypeTags(t *testing.T) {
	cases := []struct {
		artifactType string
		want         types.ArtifactKind
	}{
		{"hpi", types.ArtifactKindHostExtension},
		{"jpi", types.ArtifactKindHostExtension},
		{"jar", types.ArtifactKindOrdinaryLibrary},
		{"", types.ArtifactKindOrdinaryLibrary},
		{"war", types.ArtifactKindOrdinaryLibrary},
	}
	for _, tc := range cases {
		artifact := types.ResolvedArtifact{
			Coordinate: types.Coordinate{Group: "g", Name: "n", Version: "1"},
			Type:       tc.artifactType,
		}
		require.Equal(t, tc.want, Classify(artifact), "type %q", tc.artifactType)
	}
}
