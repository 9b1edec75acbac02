package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hpi-packager/internal/ports"
	"hpi-packager/internal/types"
)

// rewriteIntent is one declared (source, target) rewrite pair.
type rewriteIntent struct {
	Source types.RoleName
	Target types.RoleName
}

// ScopeRewriter turns plugin dependencies of a source role into
// provided entries on a target role: classpath-visible, never bundled.
// The protocol is two-phase. Declare collects intents while user
// configuration may still be mutating the graph; FreezeAndRewrite
// freezes the graph and runs every intent exactly once.
type ScopeRewriter struct {
	Graph    *RoleGraph
	Resolver ports.ResolverPort

	mu      sync.Mutex
	intents []rewriteIntent
	done    bool
	result  RewriteResult
}

// RewriteResult captures what a rewrite run resolved and produced, so
// downstream stages reuse it instead of re-resolving.
type RewriteResult struct {
	// SourceArtifacts holds the full transitive resolution of each
	// source role, exclusions already applied.
	SourceArtifacts map[types.RoleName][]types.ResolvedArtifact
	// Added lists the rewritten dependencies created, in the order
	// they were added to their target roles.
	Added []types.ProvidedManifestEntry
}

func NewScopeRewriter(graph *RoleGraph, resolver ports.ResolverPort) *ScopeRewriter {
	return &ScopeRewriter{Graph: graph, Resolver: resolver}
}

// NewDefaultScopeRewriter wires the three fixed rewrite pairs: required
// and optional plugins become provided at compile scope, test plugins
// at test scope. Server plugins and the war role are never rewritten.
func NewDefaultScopeRewriter(graph *RoleGraph, resolver ports.ResolverPort) (*ScopeRewriter, error) {
	rewriter := NewScopeRewriter(graph, resolver)
	pairs := []rewriteIntent{
		{Source: types.RolePlugins, Target: types.RoleProvidedCompile},
		{Source: types.RoleOptionalPlugins, Target: types.RoleProvidedCompile},
		{Source: types.RoleTestPlugins, Target: types.RoleProvidedTest},
	}
	for _, pair := range pairs {
		if err := rewriter.Declare(pair.Source, pair.Target); err != nil {
			return nil, err
		}
	}
	return rewriter, nil
}

// Declare registers a rewrite intent. Rejected once the graph froze.
func (r *ScopeRewriter) Declare(source types.RoleName, target types.RoleName) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Graph.Frozen() {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("cannot declare rewrite %s -> %s: role graph is frozen", source, target))
	}
	if _, err := r.Graph.Declared(source); err != nil {
		return err
	}
	if _, err := r.Graph.Declared(target); err != nil {
		return err
	}
	r.intents = append(r.intents, rewriteIntent{Source: source, Target: target})
	return nil
}

// FreezeAndRewrite freezes the role graph and executes every declared
// intent. Source roles are resolved in parallel (resolution is
// I/O-bound); writes are applied sequentially in intent declaration
// order, so when two source roles contribute the same module to the
// same target the first declared intent wins. Idempotent: a second call
// returns the first run's result without resolving anything again.
func (r *ScopeRewriter) FreezeAndRewrite(ctx context.Context) (RewriteResult, error) {
	r.mu.Lock()
	if r.done {
		result := r.result
		r.mu.Unlock()
		return result, nil
	}
	intents := append([]rewriteIntent(nil), r.intents...)
	r.mu.Unlock()

	r.Graph.Freeze()

	resolved, err := r.resolveSources(ctx, intents)
	if err != nil {
		return RewriteResult{}, err
	}

	result := RewriteResult{SourceArtifacts: resolved}
	for _, intent := range intents {
		for _, artifact := range resolved[intent.Source] {
			if Classify(artifact) != types.ArtifactKindHostExtension {
				continue
			}
			entry := types.RewrittenDependency{
				Coordinate: artifact.Coordinate,
				Transitive: false,
				Provenance: fmt.Sprintf("module %s present in role %s", artifact.Coordinate.Module(), intent.Source),
			}
			added, err := r.Graph.AddRewritten(intent.Target, entry)
			if err != nil {
				return RewriteResult{}, err
			}
			if !added {
				log.Ctx(ctx).Debug().
					Str("module", artifact.Coordinate.Module().String()).
					Str("target", string(intent.Target)).
					Msg("duplicate provided module dropped")
				continue
			}
			result.Added = append(result.Added, types.ProvidedManifestEntry{
				Target:     intent.Target,
				Coordinate: entry.Coordinate,
				Provenance: entry.Provenance,
			})
		}
	}

	r.mu.Lock()
	r.done = true
	r.result = result
	r.mu.Unlock()

	log.Ctx(ctx).Debug().Int("provided", len(result.Added)).Msg("scope rewrite completed")
	return result, nil
}

// resolveSources resolves each distinct source role once, fanning out
// across goroutines. Each role's declarations are its own frozen set,
// so the only shared state is the results map behind the mutex.
func (r *ScopeRewriter) resolveSources(ctx context.Context, intents []rewriteIntent) (map[types.RoleName][]types.ResolvedArtifact, error) {
	sources := map[types.RoleName]struct{}{}
	for _, intent := range intents {
		sources[intent.Source] = struct{}{}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		resolved = map[types.RoleName][]types.ResolvedArtifact{}
	)
	for source := range sources {
		wg.Add(1)
		go func(role types.RoleName) {
			defer wg.Done()
			artifacts, err := r.ResolveRole(ctx, role)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			resolved[role] = artifacts
		}(source)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return resolved, nil
}

// ResolveRole resolves a role's own declarations transitively, with the
// role's exclusion rules applied to the result.
func (r *ScopeRewriter) ResolveRole(ctx context.Context, role types.RoleName) ([]types.ResolvedArtifact, error) {
	deps, err := r.Graph.Declared(role)
	if err != nil {
		return nil, err
	}
	artifacts, err := r.Resolver.Resolve(ctx, role, deps)
	if err != nil {
		return nil, err
	}
	var kept []types.ResolvedArtifact
	for _, artifact := range artifacts {
		excluded, err := r.Graph.Excluded(role, artifact.Coordinate.Module())
		if err != nil {
			return nil, err
		}
		if excluded {
			continue
		}
		kept = append(kept, artifact)
	}
	return kept, nil
}
