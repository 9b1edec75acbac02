package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"hpi-packager/internal/shared"
	"hpi-packager/internal/types"
)

// PluginIndexFileAdapter resolves role dependencies against a local
// plugin index file. The index is loaded lazily and cached, so per-role
// resolve calls stay incremental: re-resolving one role never touches
// another role's result.
type PluginIndexFileAdapter struct {
	Path   string
	cached types.PluginIndexFile
	loaded bool
}

func NewPluginIndexFileAdapter(path string) *PluginIndexFileAdapter {
	return &PluginIndexFileAdapter{Path: path}
}

// Resolve walks a role's declared dependencies transitively.
// When the walk requests two versions of the same module the highest
// one wins; a module or version missing from the index fails with the
// offending coordinate and the originating role in the message.
func (a *PluginIndexFileAdapter) Resolve(ctx context.Context, role types.RoleName, deps []types.Dependency) ([]types.ResolvedArtifact, error) {
	index, err := a.load()
	if err != nil {
		return nil, err
	}

	picked := map[types.ModuleID]types.ResolvedArtifact{}
	queue := append([]types.Dependency(nil), deps...)
	for len(queue) > 0 {
		dep := queue[0]
		queue = queue[1:]

		entry, err := a.find(index, role, dep.Coordinate)
		if err != nil {
			return nil, err
		}
		module := dep.Coordinate.Module()
		if existing, ok := picked[module]; ok {
			if !newerVersion(dep.Coordinate.Version, existing.Coordinate.Version) {
				continue
			}
		}
		picked[module] = types.ResolvedArtifact{
			Coordinate: dep.Coordinate,
			Type:       entryType(entry),
			File:       a.artifactPath(entry),
		}
		if !dep.Transitive {
			continue
		}
		for _, ref := range entry.Dependencies {
			coord, err := shared.ParseCoordinate(ref)
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("role %s: bad dependency reference in index entry %s", role, dep.Coordinate)).
					WithCause(err)
			}
			queue = append(queue, types.Dependency{Coordinate: coord, Transitive: true})
		}
	}

	artifacts := make([]types.ResolvedArtifact, 0, len(picked))
	for _, artifact := range picked {
		artifacts = append(artifacts, artifact)
	}
	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Coordinate.String() < artifacts[j].Coordinate.String()
	})
	log.Ctx(ctx).Debug().Str("role", string(role)).Int("artifacts", len(artifacts)).Msg("role resolved")
	return artifacts, nil
}

func (a *PluginIndexFileAdapter) find(index types.PluginIndexFile, role types.RoleName, coord types.Coordinate) (types.PluginIndexEntry, error) {
	entries, ok := index.Modules[coord.Module().String()]
	if !ok {
		return types.PluginIndexEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("module %s not in plugin index (required by role %s)", coord.Module(), role))
	}
	for _, entry := range entries {
		if entry.Version == coord.Version {
			return entry, nil
		}
	}
	return types.PluginIndexEntry{}, errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("version %s of module %s not in plugin index (required by role %s)", coord.Version, coord.Module(), role))
}

func (a *PluginIndexFileAdapter) load() (types.PluginIndexFile, error) {
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return types.PluginIndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("plugin index file not found").
			WithCause(err)
	}
	var index types.PluginIndexFile
	if err := yaml.Unmarshal(data, &index); err != nil {
		return types.PluginIndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid plugin index format").
			WithCause(err)
	}
	if index.Modules == nil {
		index.Modules = map[string][]types.PluginIndexEntry{}
	}
	a.cached = index
	a.loaded = true
	return index, nil
}

func (a *PluginIndexFileAdapter) artifactPath(entry types.PluginIndexEntry) string {
	if entry.File == "" {
		return ""
	}
	if filepath.IsAbs(entry.File) {
		return entry.File
	}
	return filepath.Join(filepath.Dir(a.Path), entry.File)
}

func entryType(entry types.PluginIndexEntry) string {
	if entry.Type == "" {
		return types.PackagingTypeJar
	}
	return entry.Type
}

// newerVersion reports whether candidate is strictly newer than
// current. Falls back to lexicographic comparison for versions semver
// cannot parse.
func newerVersion(candidate string, current string) bool {
	cv, err1 := semver.NewVersion(candidate)
	xv, err2 := semver.NewVersion(current)
	if err1 != nil || err2 != nil {
		return candidate > current
	}
	return cv.GreaterThan(xv)
}
