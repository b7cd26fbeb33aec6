// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
	"io"
	"io/fs"
	"os"
)

// FileSystem abstracts the read-only file system operations used to locate
// packages, worlds and configuration.
type FileSystem interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(path string) ([]byte, error)

	// Stat returns file info for the named file.
	Stat(path string) (fs.FileInfo, error)

	// Exists returns true if the path exists.
	Exists(path string) bool

	// IsDir returns true if the path is a directory.
	IsDir(path string) bool

	// ReadDir reads the named directory, returning all its directory entries.
	ReadDir(path string) ([]fs.DirEntry, error)
}

// StartSpec describes one child process.
type StartSpec struct {
	// Name labels the process in logs.
	Name string

	// Argv is the command line; Argv[0] is resolved on PATH.
	Argv []string

	// Env is the complete child environment as KEY=VALUE pairs.
	Env []string

	// Dir is the working directory; empty means the caller's.
	Dir string

	// Stdout and Stderr default to the caller's when nil.
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessStarter starts child processes without waiting for them.
type ProcessStarter interface {
	// Start launches the process and returns its pid. The child is not
	// tied to ctx once started.
	Start(ctx context.Context, spec StartSpec) (int, error)
}

// Default instances using real OS operations.
var (
	defaultFS      FileSystem     = &osFileSystem{}
	defaultStarter ProcessStarter = &osStarter{}
)

// DefaultFS returns the default FileSystem implementation using real OS operations.
func DefaultFS() FileSystem {
	return defaultFS
}

// DefaultStarter returns the default ProcessStarter implementation.
func DefaultStarter() ProcessStarter {
	return defaultStarter
}

// SetDefaultFS sets the default FileSystem (useful for testing).
func SetDefaultFS(fs FileSystem) {
	defaultFS = fs
}

// SetDefaultStarter sets the default ProcessStarter (useful for testing).
func SetDefaultStarter(s ProcessStarter) {
	defaultStarter = s
}

// ResetDefaults restores the default OS implementations.
func ResetDefaults() {
	defaultFS = &osFileSystem{}
	defaultStarter = &osStarter{}
}

// osFileSystem implements FileSystem using real OS operations.
type osFileSystem struct{}

func (f *osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *osFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (f *osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (f *osFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (f *osFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}
