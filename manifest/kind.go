package manifest

import (
	"fmt"
)

// LibKind is the output format requested for a library target. The set
// is closed: every consumer switches over it exhaustively and panics on
// a value outside the enum rather than falling through a default.
type LibKind int

const (
	// KindLib is the generic "just build me a library" kind. The
	// compiler resolves it to rlib-equivalent output, which is why
	// Target.IsRlib treats it as relocatable.
	KindLib LibKind = iota
	KindRlib
	KindDylib
	KindStaticlib
)

// InvalidCrateTypeError reports a crate-type string outside the accepted
// set. This is the only fallible parse in the package.
type InvalidCrateTypeError struct {
	Value string
}

func (e *InvalidCrateTypeError) Error() string {
	return fmt.Sprintf("%s was not one of lib|rlib|dylib|staticlib", e.Value)
}

// LibKindFromString parses a declared crate type. Matching is exact and
// case sensitive; anything else is an InvalidCrateTypeError, never a
// silent default.
func LibKindFromString(value string) (LibKind, error) {
	switch value {
	case "lib":
		return KindLib, nil
	case "rlib":
		return KindRlib, nil
	case "dylib":
		return KindDylib, nil
	case "staticlib":
		return KindStaticlib, nil
	}
	return 0, &InvalidCrateTypeError{Value: value}
}

// LibKindsFromStrings parses a declared crate-type list, preserving
// order. It stops at the first invalid entry and returns its error with
// no partial result.
func LibKindsFromStrings(values []string) ([]LibKind, error) {
	kinds := make([]LibKind, 0, len(values))
	for _, value := range values {
		kind, err := LibKindFromString(value)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// CrateType returns the compiler-facing output-type token for the kind.
func (k LibKind) CrateType() string {
	switch k {
	case KindLib:
		return "lib"
	case KindRlib:
		return "rlib"
	case KindDylib:
		return "dylib"
	case KindStaticlib:
		return "staticlib"
	}
	panic(fmt.Sprintf("manifest: unknown library kind %d", k))
}

// TargetKind classifies a target as a library (with its ordered,
// possibly repeated list of requested output kinds) or an executable.
type TargetKind struct {
	libKinds []LibKind
	bin      bool
}

func LibTargetKind(kinds []LibKind) TargetKind {
	return TargetKind{libKinds: kinds}
}

func BinTargetKind() TargetKind {
	return TargetKind{bin: true}
}

func (k TargetKind) IsLib() bool {
	return !k.bin
}

func (k TargetKind) IsBin() bool {
	return k.bin
}

// LibKinds returns the declared library kinds in declaration order.
// Empty (and meaningless) for executables.
func (k TargetKind) LibKinds() []LibKind {
	return k.libKinds
}
