package manifest

import (
	"github.com/vhbit/cargo/pkgid"
)

// Target is one compilable unit: a library, binary, example, test or
// bench. It binds a name, a source entry point, a copy of the profile
// it is built under, and — for targets whose profile variants must
// coexist on disk — a metadata disambiguation token. Immutable after
// construction through one of the factory functions below.
type Target struct {
	kind     TargetKind
	name     string
	srcPath  string
	profile  Profile
	metadata *pkgid.Metadata
}

// LibTarget builds a library target. Libraries always carry metadata:
// the same library is compiled under several profiles and the resulting
// artifacts must not collide on disk.
func LibTarget(name string, kinds []LibKind, srcPath string, profile Profile, metadata pkgid.Metadata) Target {
	return Target{
		kind:     LibTargetKind(kinds),
		name:     name,
		srcPath:  srcPath,
		profile:  profile,
		metadata: &metadata,
	}
}

func BinTarget(name string, srcPath string, profile Profile, metadata *pkgid.Metadata) Target {
	var copied *pkgid.Metadata
	if metadata != nil {
		m := *metadata
		copied = &m
	}
	return Target{
		kind:     BinTargetKind(),
		name:     name,
		srcPath:  srcPath,
		profile:  profile,
		metadata: copied,
	}
}

// ExampleTarget builds an example executable. Examples carry no
// metadata; they rely on name uniqueness within their directory.
func ExampleTarget(name string, srcPath string, profile Profile) Target {
	return Target{
		kind:    BinTargetKind(),
		name:    name,
		srcPath: srcPath,
		profile: profile,
	}
}

func TestTarget(name string, srcPath string, profile Profile, metadata pkgid.Metadata) Target {
	return Target{
		kind:     BinTargetKind(),
		name:     name,
		srcPath:  srcPath,
		profile:  profile,
		metadata: &metadata,
	}
}

func BenchTarget(name string, srcPath string, profile Profile, metadata pkgid.Metadata) Target {
	return Target{
		kind:     BinTargetKind(),
		name:     name,
		srcPath:  srcPath,
		profile:  profile,
		metadata: &metadata,
	}
}

// FileStem is the base filename for the target's artifacts: the name
// with the metadata suffix appended verbatim when present. Kind
// specific prefixes and extensions are the compiler's business.
func (t Target) FileStem() string {
	if t.metadata != nil {
		return t.name + t.metadata.ExtraFilename
	}
	return t.name
}

func (t Target) GetName() string {
	return t.name
}

func (t Target) GetSrcPath() string {
	return t.srcPath
}

func (t Target) GetProfile() Profile {
	return t.profile
}

func (t Target) GetMetadata() *pkgid.Metadata {
	return t.metadata
}

func (t Target) GetKind() TargetKind {
	return t.kind
}

func (t Target) IsLib() bool {
	return t.kind.IsLib()
}

func (t Target) IsDylib() bool {
	if !t.kind.IsLib() {
		return false
	}
	for _, kind := range t.kind.LibKinds() {
		if kind == KindDylib {
			return true
		}
	}
	return false
}

// IsRlib is true for rlib and for the generic lib kind: an unspecified
// library kind is compiler-default-resolved to rlib-equivalent output,
// and dependency linking relies on the two being merged here.
func (t Target) IsRlib() bool {
	if !t.kind.IsLib() {
		return false
	}
	for _, kind := range t.kind.LibKinds() {
		if kind == KindRlib || kind == KindLib {
			return true
		}
	}
	return false
}

func (t Target) IsStaticlib() bool {
	if !t.kind.IsLib() {
		return false
	}
	for _, kind := range t.kind.LibKinds() {
		if kind == KindStaticlib {
			return true
		}
	}
	return false
}

func (t Target) IsBin() bool {
	return t.kind.IsBin()
}

// RustcCrateTypes returns the compiler output-type tokens for the
// target: one token per declared library kind, in declaration order
// with duplicates preserved, or the single token "bin" for executables.
func (t Target) RustcCrateTypes() []string {
	if t.kind.IsBin() {
		return []string{"bin"}
	}
	types := make([]string, 0, len(t.kind.LibKinds()))
	for _, kind := range t.kind.LibKinds() {
		types = append(types, kind.CrateType())
	}
	return types
}
