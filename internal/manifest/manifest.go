package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
)

// Manifest is a list of symbolic links to create, read from a TOML file.
//
//	requires = ">= 0.2.0"
//	root = "build/out"
//
//	[[link]]
//	path = "a/b/c/link"
//	target = "../../../a.txt"
type Manifest struct {
	Requires string `toml:"requires"`
	Root     string `toml:"root"`
	Links    []Link `toml:"link"`

	// Directory the manifest was loaded from. Relative roots
	// and link paths are resolved against it.
	dir string
}

type Link struct {
	Path   string `toml:"path"`
	Target string `toml:"target"`
}

// Entry is a link with its path resolved to the location it will
// be created at. Targets are never rewritten.
type Entry struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Target string `json:"target"`
}

func Load(filename string) (*Manifest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}

	m, err := Parse(data, filepath.Dir(absFilename))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", filename, err)
	}

	return m, nil
}

func Parse(data []byte, dir string) (*Manifest, error) {
	var m Manifest

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&m); err != nil {
		return nil, err
	}

	m.dir = dir

	return &m, nil
}

// Validate the manifest, collecting every problem found instead
// of stopping at the first one.
func (m *Manifest) Validate() error {
	var errs ManifestErrors

	seen := make(map[string]int, len(m.Links))

	for i, link := range m.Links {
		if strings.TrimSpace(link.Path) == "" {
			errs = append(errs, EntryError{Index: i, Field: "path", Message: "path cannot be empty"})
		}

		if strings.TrimSpace(link.Target) == "" {
			errs = append(errs, EntryError{Index: i, Field: "target", Message: "target cannot be empty"})
		}

		if link.Path == "" {
			continue
		}

		resolved := m.resolve(link.Path)
		if first, ok := seen[resolved]; ok {
			errs = append(errs, EntryError{
				Index:   i,
				Field:   "path",
				Message: fmt.Sprintf("duplicate of link #%d (%s)", first, link.Path),
			})
			continue
		}
		seen[resolved] = i
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Check the `requires` version constraint against the running
// version. Versions that are not semantic versions, such as those
// of development builds, always pass.
func (m *Manifest) CheckVersion(version string) error {
	if m.Requires == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return fmt.Errorf("invalid version constraint '%s': %w", m.Requires, err)
	}

	current, err := semver.NewVersion(version)
	if err != nil {
		return nil
	}

	if !constraint.Check(current) {
		return fmt.Errorf("manifest requires linkfarm %s, but this is version %s", m.Requires, current)
	}

	return nil
}

// The directory that relative link paths are resolved against.
func (m *Manifest) RootDir() string {
	if m.Root == "" {
		return m.dir
	}

	if filepath.IsAbs(m.Root) {
		return filepath.Clean(m.Root)
	}

	return filepath.Join(m.dir, m.Root)
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(m.RootDir(), path)
}

func (m *Manifest) Entries() []Entry {
	entries := make([]Entry, 0, len(m.Links))

	for _, link := range m.Links {
		entries = append(entries, Entry{
			Name:   link.Path,
			Path:   m.resolve(link.Path),
			Target: link.Target,
		})
	}

	return entries
}
