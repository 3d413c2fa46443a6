package models

import (
	"path/filepath"
	"strings"
	"time"
)

// FileRecord contains metadata for a single file discovered during a scan.
// Records are created once by the scanner and never mutated afterwards.
type FileRecord struct {
	Path         string    `json:"path"`          // Full file path
	Name         string    `json:"name"`          // Base name
	Size         int64     `json:"size"`          // File size in bytes
	LastAccessed time.Time `json:"last_accessed"` // Last access time
	LastModified time.Time `json:"last_modified"` // Last modification time
	Extension    string    `json:"extension"`     // Lower-cased extension including the dot, "" when none
}

// NewFileRecord builds a FileRecord for path, deriving Name and Extension.
func NewFileRecord(path string, size int64, accessed, modified time.Time) FileRecord {
	name := filepath.Base(path)
	return FileRecord{
		Path:         path,
		Name:         name,
		Size:         size,
		LastAccessed: accessed,
		LastModified: modified,
		Extension:    ExtensionOf(name),
	}
}

// ExtensionOf returns the lower-cased extension of a file name including
// the leading dot. Dotfiles such as ".bashrc" have no extension.
func ExtensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return ""
	}
	return strings.ToLower(ext)
}
