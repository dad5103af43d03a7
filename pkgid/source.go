package pkgid

// SourceKind tells how a source location is interpreted.
type SourceKind int

const (
	PathKind SourceKind = iota
	GitKind
	RegistryKind
)

// SourceId identifies where a package comes from. It is pure data:
// nothing in this layer ever dereferences the location.
type SourceId struct {
	kind      SourceKind
	location  string
	reference string
}

func PathSource(path string) SourceId {
	return SourceId{kind: PathKind, location: path}
}

// GitSource identifies a git repository plus an optional branch, tag or
// revision reference.
func GitSource(url string, reference string) SourceId {
	return SourceId{kind: GitKind, location: url, reference: reference}
}

func RegistrySource(url string) SourceId {
	return SourceId{kind: RegistryKind, location: url}
}

// CentralRegistry is the source dependencies default to when a
// declaration names only a version requirement.
func CentralRegistry() SourceId {
	return RegistrySource("https://crates.io/")
}

func (s SourceId) GetKind() SourceKind {
	return s.kind
}

func (s SourceId) GetLocation() string {
	return s.location
}

func (s SourceId) GetReference() string {
	return s.reference
}

func (s SourceId) Equal(other SourceId) bool {
	return s == other
}

// String renders the canonical "<kind>+<location>" form used in package
// id displays and serialized dependencies.
func (s SourceId) String() string {
	switch s.kind {
	case PathKind:
		return "path+" + s.location
	case GitKind:
		if s.reference != "" {
			return "git+" + s.location + "#" + s.reference
		}
		return "git+" + s.location
	case RegistryKind:
		return "registry+" + s.location
	}
	panic("pkgid: unknown source kind")
}
