package pkgid

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/vhbit/cargo/util"
)

const metadataDomain = "cargo.pkgid"

// PackageId is the immutable identity of one package: name, semantic
// version and source origin. Ids are comparable and orderable so
// planning output can be sorted stably and keyed without surprises.
type PackageId struct {
	name    string
	version *semver.Version
	source  SourceId
}

func NewPackageId(name string, version string, source SourceId) (PackageId, error) {
	if name == "" {
		return PackageId{}, fmt.Errorf("package name is empty")
	}
	parsed, err := semver.NewVersion(version)
	if err != nil {
		return PackageId{}, fmt.Errorf("invalid version %q for package %s: %w", version, name, err)
	}
	return PackageId{name: name, version: parsed, source: source}, nil
}

func (p PackageId) GetName() string {
	return p.name
}

func (p PackageId) GetVersion() *semver.Version {
	return p.version
}

func (p PackageId) GetSource() SourceId {
	return p.source
}

func (p PackageId) Equal(other PackageId) bool {
	return p.Compare(other) == 0
}

// Compare orders ids by name, then version, then source. Zero-value ids
// (no version) sort before any versioned id of the same name.
func (p PackageId) Compare(other PackageId) int {
	if c := strings.Compare(p.name, other.name); c != 0 {
		return c
	}
	switch {
	case p.version == nil && other.version == nil:
	case p.version == nil:
		return -1
	case other.version == nil:
		return 1
	default:
		if c := p.version.Compare(other.version); c != 0 {
			return c
		}
	}
	return strings.Compare(p.source.String(), other.source.String())
}

// String renders "name vX.Y.Z (source)", the display form used in
// status lines and plan records.
func (p PackageId) String() string {
	return fmt.Sprintf("%s v%s (%s)", p.name, p.version, p.source)
}

// Metadata is the filename-disambiguation token attached to library,
// test and bench targets. ExtraFilename is appended verbatim to a
// target's name when forming its artifact file stem. The core treats
// the token as opaque: copied and compared, never parsed.
type Metadata struct {
	Metadata      string `json:"metadata"`
	ExtraFilename string `json:"extra_filename"`
}

// GenerateMetadata derives the disambiguation token for this package.
// Two packages differing in name, version or source never share one.
func (p PackageId) GenerateMetadata() Metadata {
	return Metadata{
		Metadata:      fmt.Sprintf("%s:%s", p.name, p.version),
		ExtraFilename: "-" + util.ShortHash(metadataDomain, p.String()),
	}
}

// Mix derives a new token from an existing one, for targets that need
// disambiguation beyond the package identity: one test binary per
// declared test, one bench binary per declared bench.
func (m Metadata) Mix(extra string) Metadata {
	mixed := m.Metadata + ":" + extra
	return Metadata{
		Metadata:      mixed,
		ExtraFilename: "-" + util.ShortHash(metadataDomain, mixed),
	}
}
