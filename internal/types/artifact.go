package types

import "fmt"

// ModuleID is the identity a dependency is deduplicated by. Version is
// deliberately not part of it: two versions of the same module are still
// the same module for bundling purposes.
type ModuleID struct {
	Group string
	Name  string
}

func (m ModuleID) String() string {
	return fmt.Sprintf("%s:%s", m.Group, m.Name)
}

// Coordinate is a fully versioned module reference as declared in a
// project spec or produced by resolution.
type Coordinate struct {
	Group   string
	Name    string
	Version string
}

func (c Coordinate) Module() ModuleID {
	return ModuleID{Group: c.Group, Name: c.Name}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%s:%s:%s", c.Group, c.Name, c.Version)
}

// ResolvedArtifact is one resolver output. Immutable once resolution
// completes.
type ResolvedArtifact struct {
	Coordinate Coordinate
	// Type is the declared packaging type (hpi, jpi, jar, ...).
	Type       string
	Classifier string
	// File is the artifact's binary location on disk. May be empty for
	// artifacts that are never copied anywhere (provided scope).
	File string
}

// FileName is the conventional <name>-<version>.<type> artifact file name,
// used for lib/ entries when File carries no base name of its own.
func (a ResolvedArtifact) FileName() string {
	ext := a.Type
	if ext == "" {
		ext = PackagingTypeJar
	}
	return fmt.Sprintf("%s-%s.%s", a.Coordinate.Name, a.Coordinate.Version, ext)
}

// RewrittenDependency is a dependency re-added to a target role so it
// stays classpath-visible without being bundled. One instance per
// distinct module per target role; never mutated after creation.
type RewrittenDependency struct {
	Coordinate Coordinate
	// Transitive is always false for rewritten entries: the host
	// platform wires the extension's own dependency fan-out at run
	// time, so pulling it in here would double-resolve it.
	Transitive bool
	// Provenance records why the entry exists, e.g.
	// "module org.acme:credentials present in role plugins".
	Provenance string
}

// Dependency is a role's declared (not yet resolved) dependency.
type Dependency struct {
	Coordinate Coordinate
	Transitive bool
	Source     string
}

// ExclusionRule drops a module from a role's resolution result.
type ExclusionRule struct {
	Group string `yaml:"group"`
	Name  string `yaml:"name"`
}

func (r ExclusionRule) Matches(m ModuleID) bool {
	return r.Group == m.Group && r.Name == m.Name
}

// ManifestAttribute is a single manifest entry. Values are plain strings
// so the attribute set can double as a build-input fingerprint.
type ManifestAttribute struct {
	Key   string
	Value string
}

// ManifestAttributes preserves insertion order, matching the order the
// attributes are written into MANIFEST.MF.
type ManifestAttributes []ManifestAttribute

func (m ManifestAttributes) Get(key string) (string, bool) {
	for _, attr := range m {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// PackageDescriptor carries everything the package assembler needs to
// name and fill the container archive.
type PackageDescriptor struct {
	ShortName string
	Extension string
	// Excluded holds the module identities that must not appear in the
	// container's lib/ directory (host-supplied at run time).
	Excluded map[ModuleID]struct{}
}

// ArchiveName is the final container file name.
func (d PackageDescriptor) ArchiveName() string {
	return fmt.Sprintf("%s.%s", d.ShortName, d.Extension)
}
