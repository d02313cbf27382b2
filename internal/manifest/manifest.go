// Package manifest reads and edits the project manifest (Cargo.toml by
// default). The release pipeline needs exactly one thing from the manifest:
// the declared version string. Extraction is deliberately textual - the first
// line matching `version = "<value>"` wins, matching the behavior the release
// commit message has always been built from - while Load offers a structured
// TOML view used for diagnostics.
package manifest

import (
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"

	"github.com/rash-sh/relprep/internal/errors"
)

// versionLine matches a manifest version declaration. The captured value is
// taken verbatim, including any pre-release or build suffix.
var versionLine = regexp.MustCompile(`^\s*version\s*=\s*"([^"]*)"`)

// Metadata is the structured view of the manifest fields relprep cares about.
type Metadata struct {
	Package PackageMeta `toml:"package"`
}

// PackageMeta holds the top-level package table.
type PackageMeta struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

// Manifest is a handle on the manifest file. It never caches content; every
// operation re-reads the file so edits made by earlier pipeline steps are
// always observed.
type Manifest struct {
	Path string
}

// New returns a Manifest for the given path.
func New(path string) *Manifest {
	return &Manifest{Path: path}
}

// ExtractVersion scans the manifest top-to-bottom and returns the value of
// the first line matching `version = "<value>"`. It returns a ManifestError
// wrapping ErrNoVersionLine when no line matches.
//
// The first match is authoritative even if the manifest declares version keys
// in nested tables; callers who want to detect that ambiguity can compare
// against Load().Package.Version.
func (m *Manifest) ExtractVersion() (string, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return "", errors.NewManifestError("failed to read manifest", err).WithPath(m.Path)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if match := versionLine.FindStringSubmatch(line); match != nil {
			return match[1], nil
		}
	}

	return "", errors.NewManifestError("version extraction failed", errors.ErrNoVersionLine).WithPath(m.Path)
}

// SetVersion rewrites the first version line to declare the given version,
// leaving every other byte of the manifest untouched. The version must be
// valid semver; it is validated before the file is opened so an invalid value
// causes no side effect.
func (m *Manifest) SetVersion(version string) error {
	if err := ValidateVersion(version); err != nil {
		return err
	}

	data, err := os.ReadFile(m.Path)
	if err != nil {
		return errors.NewManifestError("failed to read manifest", err).WithPath(m.Path)
	}

	lines := strings.Split(string(data), "\n")
	replaced := false
	for i, line := range lines {
		if match := versionLine.FindStringSubmatch(line); match != nil {
			lines[i] = strings.Replace(line, `"`+match[1]+`"`, `"`+version+`"`, 1)
			replaced = true
			break
		}
	}
	if !replaced {
		return errors.NewManifestError("version rewrite failed", errors.ErrNoVersionLine).WithPath(m.Path)
	}

	info, err := os.Stat(m.Path)
	if err != nil {
		return errors.NewManifestError("failed to stat manifest", err).WithPath(m.Path)
	}

	if err := os.WriteFile(m.Path, []byte(strings.Join(lines, "\n")), info.Mode().Perm()); err != nil {
		return errors.NewManifestError("failed to write manifest", err).WithPath(m.Path)
	}
	return nil
}

// Load parses the manifest as TOML and returns the structured metadata.
func (m *Manifest) Load() (*Metadata, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, errors.NewManifestError("failed to read manifest", err).WithPath(m.Path)
	}

	var meta Metadata
	if err := toml.Unmarshal(data, &meta); err != nil {
		return nil, errors.NewManifestError("failed to parse manifest", err).WithPath(m.Path)
	}
	return &meta, nil
}

// ValidateVersion checks that version is a well-formed semver string
// (X.Y.Z with optional pre-release/build suffix). Returns a ValidationError
// wrapping ErrInvalidVersion otherwise.
func ValidateVersion(version string) error {
	if _, err := semver.StrictNewVersion(version); err != nil {
		return errors.NewValidationError("release version must be semver").
			WithField("version").
			WithValue(version).
			WithCause(errors.Join(errors.ErrInvalidVersion, err))
	}
	return nil
}
