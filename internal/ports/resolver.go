package ports

import (
	"context"

	"hpi-packager/internal/types"
)

// ResolverPort resolves one role's declared dependencies transitively.
// Implementations must support incremental re-resolution: adding
// rewritten entries to one role must not force unrelated roles to be
// resolved again.
type ResolverPort interface {
	Resolve(ctx context.Context, role types.RoleName, deps []types.Dependency) ([]types.ResolvedArtifact, error)
}
