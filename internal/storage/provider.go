// Package storage defines the file-system abstraction used for chord
// libraries and exported diagrams.
package storage

import "github.com/starford/fretwork/internal/models"

// Provider is the interface for file operations under a root directory.
type Provider interface {
	// List returns metadata for every matching file under dir (relative to root).
	List(dir string) ([]models.FileMetadata, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to root).
	Write(path string, content []byte) error
	// Delete removes the file at path (relative to root).
	Delete(path string) error
	// Move renames oldPath to newPath (both relative to root).
	Move(oldPath, newPath string) error
}
