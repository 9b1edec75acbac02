package core

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hpi-packager/internal/ports"
	"hpi-packager/internal/types"
)

// suffix conventionally carried by plugin project names, stripped when
// deriving the archive base name.
const projectNameSuffix = "-plugin"

// licenseDir is where the license report lands inside the container.
const licenseDir = "META-INF/licenses"

// PackageAssembler drives final archive assembly: naming, the nested
// plugin jar, the bundled lib/ directory and the license report.
type PackageAssembler struct {
	Archives ports.ArchiveFactoryPort
}

func NewPackageAssembler(archives ports.ArchiveFactoryPort) PackageAssembler {
	return PackageAssembler{Archives: archives}
}

// AssembleInput carries the fully resolved, already rewritten inputs of
// one packaging run.
type AssembleInput struct {
	Descriptor types.PackageDescriptor
	Manifest   types.ManifestAttributes
	// PluginJar is the compiled plugin jar, classes and resources
	// already inside.
	PluginJar string
	// RuntimeArtifacts is every resolved runtime artifact in the
	// graph; host extensions and excluded modules never reach lib/.
	RuntimeArtifacts []types.ResolvedArtifact
	// LicenseReportDir is copied verbatim under META-INF/licenses.
	// Empty skips the copy.
	LicenseReportDir string
	OutputDir        string
}

// ComputeDescriptor derives the archive base name and extension.
// An explicit short name wins; otherwise the project name is used with
// a trailing "-plugin" stripped. Only the two accepted extensions pass,
// the first being the default.
func ComputeDescriptor(spec types.ProjectSpec, excluded map[types.ModuleID]struct{}) (types.PackageDescriptor, error) {
	shortName := strings.TrimSpace(spec.Options.ShortName)
	if shortName == "" {
		shortName = strings.TrimSuffix(strings.TrimSpace(spec.Metadata.Name), projectNameSuffix)
	}
	if shortName == "" {
		return types.PackageDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project metadata has no name to derive the archive name from")
	}
	extension := strings.TrimSpace(spec.Options.FileExtension)
	if extension == "" {
		extension = types.FileExtensionHPI
	}
	if extension != types.FileExtensionHPI && extension != types.FileExtensionJPI {
		return types.PackageDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported archive extension %q: want %s or %s", extension, types.FileExtensionHPI, types.FileExtensionJPI))
	}
	if excluded == nil {
		excluded = map[types.ModuleID]struct{}{}
	}
	return types.PackageDescriptor{
		ShortName: shortName,
		Extension: extension,
		Excluded:  excluded,
	}, nil
}

// BuildExclusions collects the module identities that must stay out of
// lib/: every module rewritten into a provided role plus everything the
// host core resolution pulls in.
func BuildExclusions(provided []types.RewrittenDependency, coreArtifacts []types.ResolvedArtifact) map[types.ModuleID]struct{} {
	excluded := map[types.ModuleID]struct{}{}
	for _, dep := range provided {
		excluded[dep.Coordinate.Module()] = struct{}{}
	}
	for _, artifact := range coreArtifacts {
		excluded[artifact.Coordinate.Module()] = struct{}{}
	}
	return excluded
}

// Assemble writes the container archive. Each step is a precondition
// for the next; on any failure the staged archive is discarded and the
// final output path is left untouched.
func (p PackageAssembler) Assemble(input AssembleInput) (string, error) {
	if strings.TrimSpace(input.PluginJar) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plugin jar path is required")
	}
	finalPath := filepath.Join(input.OutputDir, input.Descriptor.ArchiveName())

	archive, err := p.Archives.Create(finalPath)
	if err != nil {
		return "", err
	}
	if err := p.fill(archive, input); err != nil {
		_ = archive.Abort()
		return "", err
	}
	if err := archive.Close(); err != nil {
		return "", err
	}
	return finalPath, nil
}

func (p PackageAssembler) fill(archive ports.ArchiveWriterPort, input AssembleInput) error {
	if err := archive.WriteManifest(input.Manifest); err != nil {
		return err
	}
	if err := archive.NestJar(input.Descriptor.ShortName+".jar", input.PluginJar); err != nil {
		return err
	}
	for _, artifact := range bundledArtifacts(input.Descriptor, input.RuntimeArtifacts) {
		if err := archive.AddFile("lib/"+artifact.FileName(), artifact.File); err != nil {
			return err
		}
	}
	if input.LicenseReportDir != "" {
		if err := archive.AddTree(licenseDir, input.LicenseReportDir); err != nil {
			return err
		}
	}
	return nil
}

// bundledArtifacts filters the runtime artifacts down to what lands in
// lib/: ordinary libraries only, excluded modules dropped, deduplicated
// by file name, sorted for a stable entry order.
func bundledArtifacts(descriptor types.PackageDescriptor, artifacts []types.ResolvedArtifact) []types.ResolvedArtifact {
	seen := map[string]struct{}{}
	var bundled []types.ResolvedArtifact
	for _, artifact := range artifacts {
		if Classify(artifact) == types.ArtifactKindHostExtension {
			continue
		}
		if _, ok := descriptor.Excluded[artifact.Coordinate.Module()]; ok {
			log.Debug().Str("module", artifact.Coordinate.Module().String()).Msg("provided module kept out of lib/")
			continue
		}
		name := artifact.FileName()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		bundled = append(bundled, artifact)
	}
	sort.Slice(bundled, func(i, j int) bool {
		return bundled[i].FileName() < bundled[j].FileName()
	})
	return bundled
}
