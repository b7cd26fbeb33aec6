package ament

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/gym-gazebo/gzlaunch/internal/env"
	"github.com/gym-gazebo/gzlaunch/internal/logging"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

// PrefixPathVar is the variable listing install prefixes.
const PrefixPathVar = "AMENT_PREFIX_PATH"

const resourceIndex = "share/ament_index/resource_index/packages"

var packageNameRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// PackageNotFoundError is returned when no prefix carries the package.
type PackageNotFoundError struct {
	Name     string
	Prefixes []string
}

func (e *PackageNotFoundError) Error() string {
	if len(e.Prefixes) == 0 {
		return fmt.Sprintf("package %q not found: %s is empty", e.Name, PrefixPathVar)
	}
	return fmt.Sprintf("package %q not found in %s", e.Name, strings.Join(e.Prefixes, ":"))
}

// Index resolves packages against an ordered list of install prefixes.
type Index struct {
	Prefixes []string
	FS       system.FileSystem
}

// New creates an index over prefixes. A nil fsys uses the OS.
func New(prefixes []string, fsys system.FileSystem) *Index {
	if fsys == nil {
		fsys = system.DefaultFS()
	}
	return &Index{Prefixes: prefixes, FS: fsys}
}

// FromEnvironment builds an index from AMENT_PREFIX_PATH in e.
func FromEnvironment(e *env.Environment, fsys system.FileSystem) *Index {
	var prefixes []string
	for _, p := range strings.Split(e.Get(PrefixPathVar), ":") {
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return New(prefixes, fsys)
}

// ValidatePackageName rejects names that could not be an ament package.
func ValidatePackageName(name string) error {
	if !packageNameRegex.MatchString(name) {
		return fmt.Errorf("invalid package name %q", name)
	}
	return nil
}

// Prefix returns the first install prefix that carries pkg.
func (i *Index) Prefix(pkg string) (string, error) {
	if err := ValidatePackageName(pkg); err != nil {
		return "", err
	}
	for _, prefix := range i.Prefixes {
		marker := filepath.Join(prefix, resourceIndex, pkg)
		if i.FS.Exists(marker) {
			logging.Debug("resolved package", "name", pkg, "prefix", prefix)
			return prefix, nil
		}
	}
	return "", &PackageNotFoundError{Name: pkg, Prefixes: i.Prefixes}
}

// Share returns <prefix>/share/<pkg>.
func (i *Index) Share(pkg string) (string, error) {
	prefix, err := i.Prefix(pkg)
	if err != nil {
		return "", err
	}
	return filepath.Join(prefix, "share", pkg), nil
}

// Resolve joins rel onto the share directory of pkg without letting it
// escape that directory.
func (i *Index) Resolve(pkg, rel string) (string, error) {
	share, err := i.Share(pkg)
	if err != nil {
		return "", err
	}
	path, err := securejoin.SecureJoin(share, rel)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s in package %s: %w", rel, pkg, err)
	}
	return path, nil
}

// Packages lists every package registered under any prefix, sorted.
func (i *Index) Packages() ([]string, error) {
	seen := make(map[string]bool)
	for _, prefix := range i.Prefixes {
		dir := filepath.Join(prefix, resourceIndex)
		if !i.FS.IsDir(dir) {
			continue
		}
		entries, err := i.FS.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read resource index %s: %w", dir, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				seen[e.Name()] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
