package types

// Metadata identifies the plugin project being packaged.
type Metadata struct {
	Group       string `yaml:"group"`
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

// Options mirrors the configuration surface the host build exposes.
// The boolean switches are consumed and surfaced by this tool but acted
// on elsewhere in the build.
type Options struct {
	// ShortName overrides the archive base name. When empty it defaults
	// to the project name with a trailing "-plugin" suffix stripped.
	ShortName string `yaml:"short_name,omitempty"`
	// FileExtension selects the container extension, "hpi" (default)
	// or "jpi".
	FileExtension string `yaml:"file_extension,omitempty"`

	ConfigureRepositories bool `yaml:"configure_repositories,omitempty"`
	ConfigurePublishing   bool `yaml:"configure_publishing,omitempty"`
	DisableTestHarness    bool `yaml:"disable_test_harness,omitempty"`
}

// RoleDependencies is one role's declared dependency block.
type RoleDependencies struct {
	// Modules lists group:name:version coordinates.
	Modules []string `yaml:"modules"`
	// Excludes lists group:name pairs always dropped from the role's
	// resolution result.
	Excludes []ExclusionRule `yaml:"excludes,omitempty"`
}

// ProjectSpec is the plugin.yaml file driving a packaging run.
type ProjectSpec struct {
	APIVersion string   `yaml:"api_version"`
	Metadata   Metadata `yaml:"metadata"`
	Options    Options  `yaml:"options,omitempty"`

	// Dependencies maps role names to declarations. Unknown role names
	// are a configuration error.
	Dependencies map[RoleName]RoleDependencies `yaml:"dependencies"`
}
