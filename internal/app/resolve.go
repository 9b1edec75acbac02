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

// projectResolution is the shared outcome of resolving a project: the
// frozen role graph, the rewrite result and every role's resolved
// artifacts.
type projectResolution struct {
	spec          types.ProjectSpec
	graph         *core.RoleGraph
	rewrite       core.RewriteResult
	roleArtifacts map[types.RoleName][]types.ResolvedArtifact
	descriptor    types.PackageDescriptor
	manifest      types.ManifestAttributes
	fingerprint   string
}

// Resolve runs the scope rewrite and writes the deterministic resolve
// outputs: scopes.lock, provided.manifest and the manifest fingerprint.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	resolution, err := s.resolveProject(ctx, req.SpecPath, req.IndexPath)
	if err != nil {
		return ResolveResult{}, err
	}

	var lock []types.ScopeLockEntry
	for role, artifacts := range resolution.roleArtifacts {
		for _, artifact := range artifacts {
			lock = append(lock, types.ScopeLockEntry{
				Role:       role,
				Coordinate: artifact.Coordinate,
				Kind:       core.Classify(artifact),
			})
		}
	}

	output := adapters.NewOutputFileAdapter(outputDir)
	if err := output.WriteScopesLock(lock); err != nil {
		return ResolveResult{}, err
	}
	if err := output.WriteProvidedManifest(resolution.rewrite.Added); err != nil {
		return ResolveResult{}, err
	}
	if err := output.WriteManifestFingerprint(resolution.fingerprint); err != nil {
		return ResolveResult{}, err
	}

	log.Ctx(ctx).Info().
		Int("resolved", len(lock)).
		Int("provided", len(resolution.rewrite.Added)).
		Msg("resolve completed")
	return ResolveResult{
		ProjectName:   resolution.spec.Metadata.Name,
		OutputDir:     outputDir,
		ResolvedCount: len(lock),
		ProvidedCount: len(resolution.rewrite.Added),
		Fingerprint:   resolution.fingerprint,
	}, nil
}

// resolveProject loads and validates the project spec, builds the role graph,
// runs the scope rewrite and resolves the remaining roles. The manifest
// attributes and their fingerprint are derived here so resolve and
// assemble agree on them.
func (s Service) resolveProject(ctx context.Context, specPath string, indexPath string) (projectResolution, error) {
	specPath = strings.TrimSpace(specPath)
	if specPath == "" {
		return projectResolution{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project spec path is required")
	}
	indexPath = strings.TrimSpace(indexPath)
	if indexPath == "" {
		return projectResolution{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plugin index file is required")
	}

	spec, err := s.SpecLoader.Load(specPath)
	if err != nil {
		return projectResolution{}, err
	}
	if err := validateSpec(ctx, spec); err != nil {
		return projectResolution{}, err
	}
	graph, err := buildRoleGraph(spec)
	if err != nil {
		return projectResolution{}, err
	}

	resolver := adapters.NewPluginIndexFileAdapter(indexPath)
	rewriter, err := core.NewDefaultScopeRewriter(graph, resolver)
	if err != nil {
		return projectResolution{}, err
	}
	rewrite, err := rewriter.FreezeAndRewrite(ctx)
	if err != nil {
		return projectResolution{}, err
	}

	roleArtifacts := map[types.RoleName][]types.ResolvedArtifact{}
	for role, artifacts := range rewrite.SourceArtifacts {
		roleArtifacts[role] = artifacts
	}
	for _, role := range []types.RoleName{types.RoleCore, types.RoleServerPlugins, types.RoleWar} {
		artifacts, err := rewriter.ResolveRole(ctx, role)
		if err != nil {
			return projectResolution{}, err
		}
		roleArtifacts[role] = artifacts
	}

	provided, err := graph.Rewritten(types.RoleProvidedCompile)
	if err != nil {
		return projectResolution{}, err
	}
	descriptor, err := core.ComputeDescriptor(spec, core.BuildExclusions(provided, roleArtifacts[types.RoleCore]))
	if err != nil {
		return projectResolution{}, err
	}
	assembler := core.NewManifestAssembler()
	manifest, err := assembler.Assemble(spec, descriptor.ShortName)
	if err != nil {
		return projectResolution{}, err
	}

	return projectResolution{
		spec:          spec,
		graph:         graph,
		rewrite:       rewrite,
		roleArtifacts: roleArtifacts,
		descriptor:    descriptor,
		manifest:      manifest,
		fingerprint:   assembler.Fingerprint(manifest),
	}, nil
}
