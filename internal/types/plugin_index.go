package types

// PluginIndexEntry describes one published version of a module in the
// plugin index.
type PluginIndexEntry struct {
	Version string `yaml:"version"`
	// Type is the declared packaging type; defaults to "jar".
	Type string `yaml:"type,omitempty"`
	// Dependencies lists group:name:version coordinates pulled in
	// transitively.
	Dependencies []string `yaml:"dependencies,omitempty"`
	// File points at the artifact binary relative to the index file.
	File string `yaml:"file,omitempty"`
}

// PluginIndexFile is the on-disk resolver index: module identity
// ("group:name") to its known versions.
type PluginIndexFile struct {
	Modules map[string][]PluginIndexEntry `yaml:"modules"`
}
