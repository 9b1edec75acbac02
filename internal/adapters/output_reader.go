package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hpi-packager/internal/shared"
	"hpi-packager/internal/types"
)

// OutputReaderAdapter reads resolve output directories back for
// inspection.
type OutputReaderAdapter struct{}

func NewOutputReaderAdapter() OutputReaderAdapter {
	return OutputReaderAdapter{}
}

func (OutputReaderAdapter) ReadScopesLock(dir string) ([]types.ScopeLockEntry, error) {
	lines, err := readLines(filepath.Join(dir, scopesLockFile))
	if err != nil {
		return nil, err
	}
	var entries []types.ScopeLockEntry
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, invalidOutputLine(scopesLockFile, line)
		}
		coord, err := shared.ParseCoordinate(fields[1])
		if err != nil {
			return nil, invalidOutputLine(scopesLockFile, line)
		}
		entries = append(entries, types.ScopeLockEntry{
			Role:       types.RoleName(fields[0]),
			Coordinate: coord,
			Kind:       types.ArtifactKind(fields[2]),
		})
	}
	return entries, nil
}

func (OutputReaderAdapter) ReadProvidedManifest(dir string) ([]types.ProvidedManifestEntry, error) {
	lines, err := readLines(filepath.Join(dir, providedManifestFile))
	if err != nil {
		return nil, err
	}
	var entries []types.ProvidedManifestEntry
	for _, line := range lines {
		head, provenance, _ := strings.Cut(line, " # ")
		fields := strings.Fields(head)
		if len(fields) != 2 {
			return nil, invalidOutputLine(providedManifestFile, line)
		}
		coord, err := shared.ParseCoordinate(fields[1])
		if err != nil {
			return nil, invalidOutputLine(providedManifestFile, line)
		}
		entries = append(entries, types.ProvidedManifestEntry{
			Target:     types.RoleName(fields[0]),
			Coordinate: coord,
			Provenance: provenance,
		})
	}
	return entries, nil
}

func (OutputReaderAdapter) ReadManifestFingerprint(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFingerprintFile))
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest fingerprint not found").
			WithCause(err)
	}
	return strings.TrimSpace(string(data)), nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("output file not found: %s", filepath.Base(path))).
			WithCause(err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func invalidOutputLine(file string, line string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("malformed line in %s: %q", file, line))
}
