// Package shared provides common utility functions used across multiple
// packages in the hpi-packager codebase.
package shared

import (
	"fmt"
	"strings"

	"hpi-packager/internal/types"
)

// ParseCoordinate parses a "group:name:version" reference.
func ParseCoordinate(value string) (types.Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return types.Coordinate{}, fmt.Errorf("invalid coordinate %q: want group:name:version", value)
	}
	coord := types.Coordinate{
		Group:   strings.TrimSpace(parts[0]),
		Name:    strings.TrimSpace(parts[1]),
		Version: strings.TrimSpace(parts[2]),
	}
	if coord.Group == "" || coord.Name == "" || coord.Version == "" {
		return types.Coordinate{}, fmt.Errorf("invalid coordinate %q: empty segment", value)
	}
	return coord, nil
}

// ParseModuleID parses a "group:name" reference.
func ParseModuleID(value string) (types.ModuleID, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return types.ModuleID{}, fmt.Errorf("invalid module id %q: want group:name", value)
	}
	id := types.ModuleID{
		Group: strings.TrimSpace(parts[0]),
		Name:  strings.TrimSpace(parts[1]),
	}
	if id.Group == "" || id.Name == "" {
		return types.ModuleID{}, fmt.Errorf("invalid module id %q: empty segment", value)
	}
	return id, nil
}
