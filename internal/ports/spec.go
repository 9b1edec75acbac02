package ports

import "hpi-packager/internal/types"

// ProjectSpecPort loads plugin.yaml project specs.
type ProjectSpecPort interface {
	Load(path string) (types.ProjectSpec, error)
}
