// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/raido/internal/models"

// Provider is the read-only interface for vault file operations. All paths
// are relative to the vault root.
type Provider interface {
	// List returns metadata for every .md file under dir, recursively.
	List(dir string) ([]models.NoteMetadata, error)
	// ListDir returns the .md files directly inside dir (non-recursive),
	// sorted case-insensitively by filename.
	ListDir(dir string) ([]string, error)
	// Locate resolves a bare note name to a relative path, preferring a
	// root-level match over nested files. Returns apperr.ErrNotFound when no
	// file with that name exists at any depth.
	Locate(name string) (string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
}
