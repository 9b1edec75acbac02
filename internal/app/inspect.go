package app

import (
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hpi-packager/internal/types"
)

// Inspect summarizes a resolve output directory.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	dir := strings.TrimSpace(req.OutputDir)
	if dir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	lock, err := s.OutputReader.ReadScopesLock(dir)
	if err != nil {
		return InspectResult{}, err
	}
	provided, err := s.OutputReader.ReadProvidedManifest(dir)
	if err != nil {
		return InspectResult{}, err
	}
	fingerprint, err := s.OutputReader.ReadManifestFingerprint(dir)
	if err != nil {
		return InspectResult{}, err
	}

	byRole := map[types.RoleName]*InspectRoleSummary{}
	for _, entry := range lock {
		summary, ok := byRole[entry.Role]
		if !ok {
			summary = &InspectRoleSummary{Role: entry.Role}
			byRole[entry.Role] = summary
		}
		summary.Count++
		summary.Modules = append(summary.Modules, entry.Coordinate.String())
	}
	for _, entry := range provided {
		if summary, ok := byRole[entry.Target]; ok {
			summary.Provided++
		}
	}

	var roles []InspectRoleSummary
	for _, summary := range byRole {
		sort.Strings(summary.Modules)
		roles = append(roles, *summary)
	}
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].Role < roles[j].Role
	})
	return InspectResult{
		Roles:       roles,
		Provided:    provided,
		Fingerprint: fingerprint,
	}, nil
}
