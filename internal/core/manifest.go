package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hpi-packager/internal/ports"
	"hpi-packager/internal/types"
)

// ManifestAssembler derives the container manifest attributes from
// project metadata and applies them to the output archives.
type ManifestAssembler struct{}

func NewManifestAssembler() ManifestAssembler {
	return ManifestAssembler{}
}

// Assemble builds the ordered attribute set. Fails before any archive
// is touched when the required metadata (short name, version) is
// missing.
func (a ManifestAssembler) Assemble(spec types.ProjectSpec, shortName string) (types.ManifestAttributes, error) {
	if strings.TrimSpace(shortName) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest requires a short name")
	}
	if strings.TrimSpace(spec.Metadata.Version) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest requires a project version")
	}
	attrs := types.ManifestAttributes{
		{Key: "Manifest-Version", Value: "1.0"},
		{Key: "Short-Name", Value: shortName},
		{Key: "Plugin-Version", Value: spec.Metadata.Version},
	}
	if group := strings.TrimSpace(spec.Metadata.Group); group != "" {
		attrs = append(attrs, types.ManifestAttribute{Key: "Group-Id", Value: group})
	}
	if desc := strings.TrimSpace(spec.Metadata.Description); desc != "" {
		attrs = append(attrs, types.ManifestAttribute{Key: "Long-Name", Value: desc})
	}
	return attrs, nil
}

// Apply merges the attributes into each target archive's manifest.
// Archive writers keep attributes set by other collaborators; ours win
// on key collisions.
func (a ManifestAssembler) Apply(attrs types.ManifestAttributes, archives ...ports.ArchiveWriterPort) error {
	for _, archive := range archives {
		if err := archive.WriteManifest(attrs); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint hashes the attribute map into a stable build-input
// identity. Sorted key=value lines feed sha256, so the fingerprint
// changes exactly when an attribute does, independent of attribute
// order and file timestamps.
func (a ManifestAssembler) Fingerprint(attrs types.ManifestAttributes) string {
	lines := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		lines = append(lines, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}
