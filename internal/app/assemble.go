package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hpi-packager/internal/adapters"
	"hpi-packager/internal/core"
	"hpi-packager/internal/types"
)

// Assemble resolves the project and packages the final archive: merged
// manifest, nested plugin jar, bundled runtime libraries under lib/
// and the license report under META-INF/licenses.
func (s Service) Assemble(ctx context.Context, req AssembleRequest) (AssembleResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return AssembleResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	pluginJar := strings.TrimSpace(req.PluginJar)
	if pluginJar == "" {
		return AssembleResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plugin jar path is required")
	}

	resolution, err := s.resolveProject(ctx, req.SpecPath, req.IndexPath)
	if err != nil {
		return AssembleResult{}, err
	}

	// Runtime artifacts come from the runtime roles only; test, server
	// and war resolutions never reach the bundle.
	var runtime []types.ResolvedArtifact
	for _, role := range []types.RoleName{types.RolePlugins, types.RoleOptionalPlugins} {
		runtime = append(runtime, resolution.roleArtifacts[role]...)
	}

	packager := core.NewPackageAssembler(s.Archives)
	archivePath, err := packager.Assemble(core.AssembleInput{
		Descriptor:       resolution.descriptor,
		Manifest:         resolution.manifest,
		PluginJar:        pluginJar,
		RuntimeArtifacts: runtime,
		LicenseReportDir: strings.TrimSpace(req.LicenseReportDir),
		OutputDir:        outputDir,
	})
	if err != nil {
		return AssembleResult{}, err
	}

	output := adapters.NewOutputFileAdapter(outputDir)
	if err := output.WriteManifestFingerprint(resolution.fingerprint); err != nil {
		return AssembleResult{}, err
	}

	bundledFiles := map[string]struct{}{}
	for _, artifact := range runtime {
		if core.Classify(artifact) != types.ArtifactKindOrdinaryLibrary {
			continue
		}
		if _, excluded := resolution.descriptor.Excluded[artifact.Coordinate.Module()]; excluded {
			continue
		}
		bundledFiles[artifact.FileName()] = struct{}{}
	}
	bundled := len(bundledFiles)
	log.Ctx(ctx).Info().
		Str("archive", archivePath).
		Int("bundled", bundled).
		Int("provided", len(resolution.rewrite.Added)).
		Msg("assembly completed")
	return AssembleResult{
		ArchivePath:   archivePath,
		BundledCount:  bundled,
		ProvidedCount: len(resolution.rewrite.Added),
		Fingerprint:   resolution.fingerprint,
	}, nil
}
