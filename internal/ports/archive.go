package ports

import "hpi-packager/internal/types"

// ArchiveWriterPort writes the container archive. Implementations must
// stage writes and only move the archive to its final path on Close
// with no prior error, so a failed assembly never leaves a corrupt
// archive behind.
type ArchiveWriterPort interface {
	// WriteManifest writes META-INF/MANIFEST.MF, merging the given
	// attributes over any attributes supplied by other collaborators.
	WriteManifest(attrs types.ManifestAttributes) error
	// NestJar embeds an existing jar file at the given internal path.
	NestJar(internalPath string, jarPath string) error
	// AddFile copies a file into the archive at the given internal path.
	AddFile(internalPath string, sourcePath string) error
	// AddTree copies a directory tree verbatim under the given internal
	// prefix.
	AddTree(internalPrefix string, sourceDir string) error
	// Close finalizes the archive. On success the archive appears at
	// its final path atomically; on failure staging files are removed.
	Close() error
	// Abort discards the staged archive without publishing it.
	Abort() error
}

// ArchiveFactoryPort opens a staged archive writer for a final path.
type ArchiveFactoryPort interface {
	Create(finalPath string) (ArchiveWriterPort, error)
}
