package core

import (
	"fmt"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hpi-packager/internal/types"
)

// RoleGraph holds the fixed set of dependency roles and their extends
// edges. It is built once at startup and frozen on the first dependency
// read; any declaration after that point is a configuration error.
type RoleGraph struct {
	mu     sync.Mutex
	roles  map[types.RoleName]*Role
	order  []types.RoleName
	frozen bool
}

// Role is a named dependency bucket. Declared dependencies accumulate
// until the graph freezes; rewritten entries are added by the scope
// rewriter during the freeze-and-rewrite phase.
type Role struct {
	Name       types.RoleName
	Visibility types.Visibility
	Extends    []types.RoleName
	Excludes   []types.ExclusionRule

	declared  []types.Dependency
	rewritten []types.RewrittenDependency
	seen      map[types.ModuleID]struct{}
}

func NewRoleGraph() *RoleGraph {
	return &RoleGraph{roles: map[types.RoleName]*Role{}}
}

// NewDefaultRoleGraph builds the fixed role set: the host core and all
// plugin roles, plus the two provided target roles their dependencies
// are re-exposed through. The core role extends directly into
// provided-compile; the plugin roles reach it only through the scope
// rewriter.
func NewDefaultRoleGraph() (*RoleGraph, error) {
	graph := NewRoleGraph()
	fixed := []struct {
		name       types.RoleName
		visibility types.Visibility
	}{
		{types.RoleProvidedCompile, types.VisibilityHidden},
		{types.RoleProvidedTest, types.VisibilityHidden},
		{types.RoleCore, types.VisibilityHidden},
		{types.RolePlugins, types.VisibilityExposed},
		{types.RoleOptionalPlugins, types.VisibilityExposed},
		{types.RoleServerPlugins, types.VisibilityHidden},
		{types.RoleTestPlugins, types.VisibilityHidden},
		{types.RoleWar, types.VisibilityHidden},
	}
	for _, role := range fixed {
		if _, err := graph.DefineRole(role.name, role.visibility); err != nil {
			return nil, err
		}
	}
	if err := graph.DeclareExtends(types.RoleCore, types.RoleProvidedCompile); err != nil {
		return nil, err
	}
	return graph, nil
}

func (g *RoleGraph) DefineRole(name types.RoleName, visibility types.Visibility) (*Role, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.frozen {
		return nil, frozenError(fmt.Sprintf("cannot define role %s", name))
	}
	if _, ok := g.roles[name]; ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("role %s already defined", name))
	}
	role := &Role{
		Name:       name,
		Visibility: visibility,
		seen:       map[types.ModuleID]struct{}{},
	}
	g.roles[name] = role
	g.order = append(g.order, name)
	return role, nil
}

// DeclareExtends records that role's resolved dependencies are
// re-exposed through target. Cycles are rejected at declaration time,
// before any resolution is attempted.
func (g *RoleGraph) DeclareExtends(role types.RoleName, target types.RoleName) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.frozen {
		return frozenError(fmt.Sprintf("cannot declare %s extends %s", role, target))
	}
	source, err := g.lookup(role)
	if err != nil {
		return err
	}
	if _, err := g.lookup(target); err != nil {
		return err
	}
	source.Extends = append(source.Extends, target)
	if cycle := g.findCycle(); cycle != "" {
		source.Extends = source.Extends[:len(source.Extends)-1]
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("role graph cycle: %s", cycle))
	}
	return nil
}

func (g *RoleGraph) DeclareDependency(role types.RoleName, dep types.Dependency) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.frozen {
		return frozenError(fmt.Sprintf("cannot declare dependency %s on role %s", dep.Coordinate, role))
	}
	target, err := g.lookup(role)
	if err != nil {
		return err
	}
	target.declared = append(target.declared, dep)
	return nil
}

func (g *RoleGraph) DeclareExclusion(role types.RoleName, rule types.ExclusionRule) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.frozen {
		return frozenError(fmt.Sprintf("cannot declare exclusion %s:%s on role %s", rule.Group, rule.Name, role))
	}
	target, err := g.lookup(role)
	if err != nil {
		return err
	}
	target.Excludes = append(target.Excludes, rule)
	return nil
}

// AddRewritten adds a rewritten dependency to a target role,
// deduplicated by module identity. Returns true when the entry was
// added, false when the module was already present. Permitted after
// freeze: the rewrite phase runs against the frozen graph.
func (g *RoleGraph) AddRewritten(role types.RoleName, dep types.RewrittenDependency) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	target, err := g.lookup(role)
	if err != nil {
		return false, err
	}
	module := dep.Coordinate.Module()
	if _, ok := target.seen[module]; ok {
		return false, nil
	}
	target.seen[module] = struct{}{}
	target.rewritten = append(target.rewritten, dep)
	return true, nil
}

// Freeze marks the graph read-only for the rest of the build. Safe to
// call more than once.
func (g *RoleGraph) Freeze() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frozen = true
}

func (g *RoleGraph) Frozen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frozen
}

// Dependencies returns the role's own declarations followed by its
// rewritten entries and everything re-exposed through it via extends
// edges. Reading dependencies freezes the graph: user configuration is
// complete once resolution starts.
func (g *RoleGraph) Dependencies(role types.RoleName) ([]types.Dependency, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frozen = true
	target, err := g.lookup(role)
	if err != nil {
		return nil, err
	}
	var deps []types.Dependency
	deps = append(deps, target.declared...)
	for _, entry := range target.rewritten {
		deps = append(deps, types.Dependency{
			Coordinate: entry.Coordinate,
			Transitive: entry.Transitive,
			Source:     entry.Provenance,
		})
	}
	for _, other := range g.order {
		source := g.roles[other]
		for _, ext := range source.Extends {
			if ext != role {
				continue
			}
			deps = append(deps, source.declared...)
		}
	}
	return deps, nil
}

// Declared returns only the role's own declarations, without rewritten
// or inherited entries. Used to resolve a source role before rewriting.
func (g *RoleGraph) Declared(role types.RoleName) ([]types.Dependency, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	target, err := g.lookup(role)
	if err != nil {
		return nil, err
	}
	return append([]types.Dependency(nil), target.declared...), nil
}

// Rewritten returns the rewritten entries accumulated on a target role.
func (g *RoleGraph) Rewritten(role types.RoleName) ([]types.RewrittenDependency, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	target, err := g.lookup(role)
	if err != nil {
		return nil, err
	}
	return append([]types.RewrittenDependency(nil), target.rewritten...), nil
}

// Excluded reports whether a module is dropped by the role's exclusion
// rules.
func (g *RoleGraph) Excluded(role types.RoleName, module types.ModuleID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	target, err := g.lookup(role)
	if err != nil {
		return false, err
	}
	for _, rule := range target.Excludes {
		if rule.Matches(module) {
			return true, nil
		}
	}
	return false, nil
}

// Roles returns the role names in declaration order.
func (g *RoleGraph) Roles() []types.RoleName {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]types.RoleName(nil), g.order...)
}

func (g *RoleGraph) lookup(name types.RoleName) (*Role, error) {
	role, ok := g.roles[name]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown role: %s", name))
	}
	return role, nil
}

// findCycle walks the extends edges depth-first and returns a printable
// cycle path, or "" when the graph is acyclic. The role set is small
// and fixed, so a plain DFS is enough.
func (g *RoleGraph) findCycle() string {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := map[types.RoleName]int{}
	var stack []types.RoleName

	var walk func(name types.RoleName) string
	walk = func(name types.RoleName) string {
		state[name] = visiting
		stack = append(stack, name)
		for _, next := range g.roles[name].Extends {
			switch state[next] {
			case visiting:
				path := ""
				for _, entry := range stack {
					path += string(entry) + " -> "
				}
				return path + string(next)
			case unvisited:
				if cycle := walk(next); cycle != "" {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return ""
	}

	for _, name := range g.order {
		if state[name] == unvisited {
			if cycle := walk(name); cycle != "" {
				return cycle
			}
		}
	}
	return ""
}

func frozenError(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msg + ": role graph is frozen after first resolution read")
}
