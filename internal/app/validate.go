package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hpi-packager/internal/core"
	"hpi-packager/internal/policies"
	"hpi-packager/internal/shared"
	"hpi-packager/internal/types"
)

// Validate loads a project spec, checks its metadata and builds the
// role graph from it, surfacing configuration errors before any
// resolution work.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	specPath := strings.TrimSpace(req.SpecPath)
	if specPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project spec path is required")
	}
	spec, err := s.SpecLoader.Load(specPath)
	if err != nil {
		return ValidateResult{}, err
	}
	if err := validateSpec(ctx, spec); err != nil {
		return ValidateResult{}, err
	}
	if _, err := buildRoleGraph(spec); err != nil {
		return ValidateResult{}, err
	}

	descriptor, err := core.ComputeDescriptor(spec, nil)
	if err != nil {
		return ValidateResult{}, err
	}
	log.Ctx(ctx).Debug().
		Bool("configure_repositories", spec.Options.ConfigureRepositories).
		Bool("configure_publishing", spec.Options.ConfigurePublishing).
		Bool("disable_test_harness", spec.Options.DisableTestHarness).
		Msg("build options consumed")
	return ValidateResult{
		ProjectName: spec.Metadata.Name,
		ShortName:   descriptor.ShortName,
	}, nil
}

func validateSpec(ctx context.Context, spec types.ProjectSpec) error {
	assert.NotEmpty(ctx, spec.APIVersion, "api_version must be set")
	assert.NotEmpty(ctx, spec.Metadata.Name, "metadata.name must be set")
	assert.NotEmpty(ctx, spec.Metadata.Version, "metadata.version must be set")
	if strings.TrimSpace(spec.Metadata.Group) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata.group must be set")
	}
	return nil
}

// buildRoleGraph constructs the fixed role graph and declares the
// spec's dependencies and exclusions onto it.
func buildRoleGraph(spec types.ProjectSpec) (*core.RoleGraph, error) {
	graph, err := core.NewDefaultRoleGraph()
	if err != nil {
		return nil, err
	}
	exclusions, err := policies.CompileExclusions(spec)
	if err != nil {
		return nil, err
	}
	for role, rules := range exclusions {
		for _, rule := range rules {
			if err := graph.DeclareExclusion(role, rule); err != nil {
				return nil, err
			}
		}
	}
	for role, block := range spec.Dependencies {
		for _, ref := range block.Modules {
			coord, err := shared.ParseCoordinate(ref)
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("invalid module coordinate in role " + string(role)).
					WithCause(err)
			}
			dep := types.Dependency{
				Coordinate: coord,
				Transitive: true,
				Source:     "project:" + string(role),
			}
			if err := graph.DeclareDependency(role, dep); err != nil {
				return nil, err
			}
		}
	}
	return graph, nil
}
