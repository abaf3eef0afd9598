// Package loader reads richinput configuration sources into generic maps.
//
// TOML files are parsed by TOMLLoader, which also follows @include
// directives. Environment variables with the RICHINPUT_ prefix are read by
// EnvLoader. Both produce map[string]any trees that DeepMerge layers.
package loader

import (
	"io"
	"io/fs"
	"os"
)

// Loader reads one configuration source.
// A missing source yields nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// FileLoader is a Loader that can also read an explicit path.
type FileLoader interface {
	Loader
	LoadFrom(path string) (map[string]any, error)
}

// ReaderLoader reads configuration from a stream.
type ReaderLoader interface {
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem abstracts file access so tests can use an in-memory tree.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem on the real file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}
