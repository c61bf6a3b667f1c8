package gitz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/gopasspw/gopass/pkg/debug"
)

// Version is a configuration format version, as written in the `version`
// key of git-z.toml.
type Version string

// Known configuration versions, oldest first.
const (
	V0_1     Version = "0.1"
	V0_2Dev0 Version = "0.2-dev.0"
	V0_2Dev1 Version = "0.2-dev.1"
	V0_2Dev2 Version = "0.2-dev.2"
	V0_2Dev3 Version = "0.2-dev.3"
	V0_2     Version = "0.2"

	// Latest is the version written by Init and Upgrade.
	Latest = V0_2
)

var knownVersions = []Version{V0_1, V0_2Dev0, V0_2Dev1, V0_2Dev2, V0_2Dev3, V0_2}

// KnownVersions returns all supported versions, oldest first.
func KnownVersions() []Version {
	return slices.Clone(knownVersions)
}

func (v Version) String() string {
	return string(v)
}

// Index returns the position of v in the list of known versions, or -1.
func (v Version) Index() int {
	return slices.Index(knownVersions, v)
}

// Next returns the version following v. It returns false for Latest and for
// unknown versions.
func (v Version) Next() (Version, bool) {
	i := v.Index()
	if i < 0 || i+1 >= len(knownVersions) {
		return "", false
	}

	return knownVersions[i+1], true
}

// DetectVersion reads the `version` key of a generically decoded document
// and classifies it.
func DetectVersion(raw map[string]any) (Version, error) {
	value, found := raw["version"]
	if !found {
		return "", ErrMissingVersion
	}

	tag, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected a string, got %T", ErrMissingVersion, value)
	}

	return ClassifyVersion(tag)
}

// ClassifyVersion maps a version tag to a known Version. Unknown tags newer
// than Latest give ErrFutureVersion, anything else ErrUnsupportedVersion. Both
// are reported as *VersionError.
func ClassifyVersion(tag string) (Version, error) {
	if v := Version(tag); v.Index() >= 0 {
		return v, nil
	}

	verr := &VersionError{Found: tag, Latest: Latest, err: ErrUnsupportedVersion}

	found, err := parseSemver(tag)
	if err != nil {
		debug.V(1).Log("version %q is not semver: %s", tag, err)

		return "", verr
	}

	latest, err := parseSemver(string(Latest))
	if err != nil {
		return "", internalf("version detection", "latest version %q is not semver: %w", Latest, err)
	}

	if found.GT(latest) {
		verr.err = ErrFutureVersion
	}

	return "", verr
}

// parseSemver accepts the short tags used by git-z, like "0.2" or
// "0.2-dev.0", by padding the core version to three components.
func parseSemver(tag string) (semver.Version, error) {
	core, pre, hasPre := strings.Cut(tag, "-")

	parts := strings.Split(core, ".")
	if len(parts) > 3 {
		return semver.Version{}, fmt.Errorf("too many components in %q", tag)
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}

	normalized := strings.Join(parts, ".")
	if hasPre {
		normalized += "-" + pre
	}

	return semver.Parse(normalized)
}
