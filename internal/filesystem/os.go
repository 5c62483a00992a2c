// Package filesystem provides the operating-system implementation of the
// filesystem abstractions consumed by the git inspector.
package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements filesystem lookups using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}
