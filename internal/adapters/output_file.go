package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hpi-packager/internal/types"
)

const (
	scopesLockFile          = "scopes.lock"
	providedManifestFile    = "provided.manifest"
	manifestFingerprintFile = "manifest.fingerprint"
)

// OutputFileAdapter writes the deterministic resolve-run outputs.
type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

func (a OutputFileAdapter) WriteScopesLock(entries []types.ScopeLockEntry) error {
	path, err := a.ensurePath(scopesLockFile)
	if err != nil {
		return err
	}
	ordered := append([]types.ScopeLockEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Role != ordered[j].Role {
			return ordered[i].Role < ordered[j].Role
		}
		return ordered[i].Coordinate.String() < ordered[j].Coordinate.String()
	})
	var lines []string
	for _, entry := range ordered {
		lines = append(lines, fmt.Sprintf("%s %s %s", entry.Role, entry.Coordinate, entry.Kind))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func (a OutputFileAdapter) WriteProvidedManifest(entries []types.ProvidedManifestEntry) error {
	path, err := a.ensurePath(providedManifestFile)
	if err != nil {
		return err
	}
	ordered := append([]types.ProvidedManifestEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Target != ordered[j].Target {
			return ordered[i].Target < ordered[j].Target
		}
		return ordered[i].Coordinate.String() < ordered[j].Coordinate.String()
	})
	var lines []string
	for _, entry := range ordered {
		lines = append(lines, fmt.Sprintf("%s %s # %s", entry.Target, entry.Coordinate, entry.Provenance))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func (a OutputFileAdapter) WriteManifestFingerprint(fingerprint string) error {
	path, err := a.ensurePath(manifestFingerprintFile)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(fingerprint+"\n"), 0644)
}

func (a OutputFileAdapter) ensurePath(name string) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o750); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, name), nil
}
