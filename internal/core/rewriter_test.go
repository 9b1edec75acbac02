package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"hpi-packager/internal/types"
)

var errResolution = errors.New("artifact not found in index")

// fakeResolver returns canned artifacts per role and counts calls.
type fakeResolver struct {
	mu        sync.Mutex
	artifacts map[types.RoleName][]types.ResolvedArtifact
	calls     map[types.RoleName]int
	err       error
}

func (f *fakeResolver) Resolve(_ context.Context, role types.RoleName, _ []types.Dependency) ([]types.ResolvedArtifact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[types.RoleName]int{}
	}
	f.calls[role]++
	if f.err != nil {
		return nil, f.err
	}
	return f.artifacts[role], nil
}

func plugin(group, name, version string) types.ResolvedArtifact {
	return types.ResolvedArtifact{
		Coordinate: types.Coordinate{Group: group, Name: name, Version: version},
		Type:       types.PackagingTypeHPI,
	}
}

func library(group, name, version string) types.ResolvedArtifact {
	return types.ResolvedArtifact{
		Coordinate: types.Coordinate{Group: group, Name: name, Version: version},
		Type:       types.PackagingTypeJar,
	}
}

func newTestRewriter(t *testing.T, resolver *fakeResolver) (*ScopeRewriter, *RoleGraph) {
	t.Helper()
	graph, err := NewDefaultRoleGraph()
	require.NoError(t, err)
	rewriter, err := NewDefaultScopeRewriter(graph, resolver)
	require.NoError(t, err)
	return rewriter, graph
}

func TestRewritePluginsBecomeProvidedCompile(t *testing.T) {
	resolver := &fakeResolver{
		artifacts: map[types.RoleName][]types.ResolvedArtifact{
			types.RolePlugins: {
				plugin("org.acme", "credentials", "2.1.0"),
				library("org.apache", "commons-text", "1.11.0"),
			},
		},
	}
	rewriter, graph := newTestRewriter(t, resolver)

	result, err := rewriter.FreezeAndRewrite(t.Context())
	require.NoError(t, err)

	rewritten, err := graph.Rewritten(types.RoleProvidedCompile)
	require.NoError(t, err)
	require.Len(t, rewritten, 1)
	require.Equal(t, "org.acme:credentials:2.1.0", rewritten[0].Coordinate.String())
	require.False(t, rewritten[0].Transitive)
	require.Equal(t, "module org.acme:credentials present in role plugins", rewritten[0].Provenance)

	// The ordinary library never reaches the provided scope.
	require.Len(t, result.Added, 1)
}

func TestRewriteTestPluginsTargetProvidedTest(t *testing.T) {
	resolver := &fakeResolver{
		artifacts: map[types.RoleName][]types.ResolvedArtifact{
			types.RoleTestPlugins: {plugin("org.acme", "mock-host", "1.3.0")},
		},
	}
	rewriter, graph := newTestRewriter(t, resolver)

	_, err := rewriter.FreezeAndRewrite(t.Context())
	require.NoError(t, err)

	compile, err := graph.Rewritten(types.RoleProvidedCompile)
	require.NoError(t, err)
	require.Empty(t, compile)

	test, err := graph.Rewritten(types.RoleProvidedTest)
	require.NoError(t, err)
	require.Len(t, test, 1)
	require.Equal(t, "module org.acme:mock-host present in role test-plugins", test[0].Provenance)
}

func TestRewriteDeduplicatesAcrossSourceRoles(t *testing.T) {
	resolver := &fakeResolver{
		artifacts: map[types.RoleName][]types.ResolvedArtifact{
			types.RolePlugins:         {plugin("org.acme", "shared", "1.0.0")},
			types.RoleOptionalPlugins: {plugin("org.acme", "shared", "2.0.0")},
		},
	}
	rewriter, graph := newTestRewriter(t, resolver)

	result, err := rewriter.FreezeAndRewrite(t.Context())
	require.NoError(t, err)
	require.Len(t, result.Added, 1)

	// First declared intent wins: plugins before optional-plugins.
	rewritten, err := graph.Rewritten(types.RoleProvidedCompile)
	require.NoError(t, err)
	require.Len(t, rewritten, 1)
	require.Equal(t, "1.0.0", rewritten[0].Coordinate.Version)
	require.Contains(t, rewritten[0].Provenance, "role plugins")
}

func TestRewriteIdempotence(t *testing.T) {
	resolver := &fakeResolver{
		artifacts: map[types.RoleName][]types.ResolvedArtifact{
			types.RolePlugins: {plugin("org.acme", "credentials", "2.1.0")},
		},
	}
	rewriter, graph := newTestRewriter(t, resolver)

	first, err := rewriter.FreezeAndRewrite(t.Context())
	require.NoError(t, err)
	second, err := rewriter.FreezeAndRewrite(t.Context())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second rewrite differs from first (-first +second):\n%s", diff)
	}
	require.Equal(t, 1, resolver.calls[types.RolePlugins], "source role resolved more than once")

	rewritten, err := graph.Rewritten(types.RoleProvidedCompile)
	require.NoError(t, err)
	require.Len(t, rewritten, 1)
}

func TestRewriteDeclareAfterFreezeRejected(t *testing.T) {
	resolver := &fakeResolver{}
	rewriter, _ := newTestRewriter(t, resolver)

	_, err := rewriter.FreezeAndRewrite(t.Context())
	require.NoError(t, err)

	err = rewriter.Declare(types.RoleServerPlugins, types.RoleProvidedCompile)
	require.Error(t, err)
	require.Contains(t, err.Error(), "frozen")
}

func TestRewriteResolutionErrorPropagates(t *testing.T) {
	resolver := &fakeResolver{err: errResolution}
	rewriter, _ := newTestRewriter(t, resolver)

	_, err := rewriter.FreezeAndRewrite(t.Context())
	require.ErrorIs(t, err, errResolution)
}

func TestRewriteAppliesExclusionRules(t *testing.T) {
	resolver := &fakeResolver{
		artifacts: map[types.RoleName][]types.ResolvedArtifact{
			types.RolePlugins: {
				plugin("org.acme", "wanted", "1.0.0"),
				plugin("org.acme", "dropped", "1.0.0"),
			},
		},
	}
	graph, err := NewDefaultRoleGraph()
	require.NoError(t, err)
	require.NoError(t, graph.DeclareExclusion(types.RolePlugins, types.ExclusionRule{Group: "org.acme", Name: "dropped"}))
	rewriter, err := NewDefaultScopeRewriter(graph, resolver)
	require.NoError(t, err)

	result, err := rewriter.FreezeAndRewrite(t.Context())
	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	require.Equal(t, "org.acme:wanted:1.0.0", result.Added[0].Coordinate.String())
}
