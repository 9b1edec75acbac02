package adapters

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"hpi-packager/internal/types"
)

// SpecFileAdapter loads plugin.yaml project specs from disk.
type SpecFileAdapter struct{}

func NewSpecFileAdapter() SpecFileAdapter {
	return SpecFileAdapter{}
}

var knownRoles = map[types.RoleName]struct{}{
	types.RoleCore:            {},
	types.RolePlugins:         {},
	types.RoleOptionalPlugins: {},
	types.RoleServerPlugins:   {},
	types.RoleTestPlugins:     {},
	types.RoleWar:             {},
}

func (a SpecFileAdapter) Load(path string) (types.ProjectSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ProjectSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("project spec not found").
			WithCause(err)
	}
	var spec types.ProjectSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return types.ProjectSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid project spec format").
			WithCause(err)
	}
	for role := range spec.Dependencies {
		if _, ok := knownRoles[role]; !ok {
			return types.ProjectSpec{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown dependency role in project spec: %s", role))
		}
	}
	return spec, nil
}
