package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hpi-packager/internal/types"
)

// CompileExclusions validates and collects the per-role exclusion rules
// declared in a project spec. Rules with empty segments are rejected
// before they can silently match nothing.
func CompileExclusions(spec types.ProjectSpec) (map[types.RoleName][]types.ExclusionRule, error) {
	compiled := map[types.RoleName][]types.ExclusionRule{}
	for role, block := range spec.Dependencies {
		for _, rule := range block.Excludes {
			if err := validateExclusion(role, rule); err != nil {
				return nil, err
			}
			compiled[role] = append(compiled[role], rule)
		}
	}
	return compiled, nil
}

func validateExclusion(role types.RoleName, rule types.ExclusionRule) error {
	if strings.TrimSpace(rule.Group) == "" || strings.TrimSpace(rule.Name) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("role %s: exclusion needs both group and name, got %q:%q", role, rule.Group, rule.Name))
	}
	return nil
}
