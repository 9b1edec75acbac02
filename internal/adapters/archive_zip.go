package adapters

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hpi-packager/internal/ports"
	"hpi-packager/internal/types"
)

const manifestPath = "META-INF/MANIFEST.MF"

// entryTime is the fixed modification time stamped on every archive
// entry. Assembling unchanged inputs twice must yield byte-identical
// archives, so wall-clock time never reaches the output.
var entryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// ZipArchiveFactory creates staged zip container writers.
type ZipArchiveFactory struct{}

func NewZipArchiveFactory() ZipArchiveFactory {
	return ZipArchiveFactory{}
}

func (ZipArchiveFactory) Create(finalPath string) (ports.ArchiveWriterPort, error) {
	if strings.TrimSpace(finalPath) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("archive path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(finalPath), 0o750); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create archive output directory").
			WithCause(err)
	}
	return &ZipArchiveWriter{
		finalPath: finalPath,
		entries:   map[string][]byte{},
	}, nil
}

// ZipArchiveWriter buffers entries and publishes the archive only on a
// fully successful Close: the zip is written to a temporary sibling
// file and renamed into place, so no failure leaves a corrupt archive
// at the final path. Entry order and timestamps are normalized for
// reproducible output.
type ZipArchiveWriter struct {
	finalPath string
	entries   map[string][]byte
	manifest  types.ManifestAttributes
	closed    bool
}

// WriteManifest merges attributes into the archive manifest. Earlier
// attributes from other collaborators are kept; later values win per
// key while the first writer's position fixes the attribute order.
func (w *ZipArchiveWriter) WriteManifest(attrs types.ManifestAttributes) error {
	for _, attr := range attrs {
		if _, ok := w.manifest.Get(attr.Key); ok {
			for i := range w.manifest {
				if w.manifest[i].Key == attr.Key {
					w.manifest[i].Value = attr.Value
				}
			}
			continue
		}
		w.manifest = append(w.manifest, attr)
	}
	return nil
}

func (w *ZipArchiveWriter) NestJar(internalPath string, jarPath string) error {
	return w.AddFile(internalPath, jarPath)
}

func (w *ZipArchiveWriter) AddFile(internalPath string, sourcePath string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read archive input %s", sourcePath)).
			WithCause(err)
	}
	w.entries[internalPath] = data
	return nil
}

func (w *ZipArchiveWriter) AddTree(internalPrefix string, sourceDir string) error {
	return filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to walk %s", sourceDir)).
				WithCause(err)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to relativize archive tree path").
				WithCause(err)
		}
		return w.AddFile(internalPrefix+"/"+filepath.ToSlash(rel), path)
	})
}

func (w *ZipArchiveWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	tmpPath := w.finalPath + ".tmp"
	if err := w.writeZip(tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, w.finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to move archive to final path").
			WithCause(err)
	}
	return nil
}

func (w *ZipArchiveWriter) Abort() error {
	w.closed = true
	w.entries = nil
	return nil
}

func (w *ZipArchiveWriter) writeZip(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create staging archive").
			WithCause(err)
	}
	writer := zip.NewWriter(file)

	names := []string{manifestPath}
	var rest []string
	for name := range w.entries {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	names = append(names, rest...)

	for _, name := range names {
		var data []byte
		if name == manifestPath {
			data = renderManifest(w.manifest)
		} else {
			data = w.entries[name]
		}
		header := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: entryTime,
		}
		entry, err := writer.CreateHeader(header)
		if err != nil {
			_ = writer.Close()
			_ = file.Close()
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to create archive entry %s", name)).
				WithCause(err)
		}
		if _, err := entry.Write(data); err != nil {
			_ = writer.Close()
			_ = file.Close()
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to write archive entry %s", name)).
				WithCause(err)
		}
	}
	if err := writer.Close(); err != nil {
		_ = file.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to finalize archive").
			WithCause(err)
	}
	if err := file.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close staging archive").
			WithCause(err)
	}
	return nil
}

func renderManifest(attrs types.ManifestAttributes) []byte {
	var lines []string
	for _, attr := range attrs {
		lines = append(lines, fmt.Sprintf("%s: %s", attr.Key, attr.Value))
	}
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}
