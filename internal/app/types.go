package app

import "hpi-packager/internal/types"

type ValidateRequest struct {
	SpecPath string
}

type ValidateResult struct {
	ProjectName string
	ShortName   string
}

type ResolveRequest struct {
	SpecPath  string
	IndexPath string
	OutputDir string
}

type ResolveResult struct {
	ProjectName   string
	OutputDir     string
	ResolvedCount int
	ProvidedCount int
	Fingerprint   string
}

type AssembleRequest struct {
	SpecPath         string
	IndexPath        string
	PluginJar        string
	LicenseReportDir string
	OutputDir        string
}

type AssembleResult struct {
	ArchivePath   string
	BundledCount  int
	ProvidedCount int
	Fingerprint   string
}

type InspectRequest struct {
	OutputDir string
}

type InspectRoleSummary struct {
	Role     types.RoleName
	Count    int
	Modules  []string
	Provided int
}

type InspectResult struct {
	Roles       []InspectRoleSummary
	Provided    []types.ProvidedManifestEntry
	Fingerprint string
}
