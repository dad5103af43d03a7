package manifest

import (
	"encoding/hex"

	"github.com/vhbit/cargo/util"
)

const fingerprintDomain = "cargo.profile"

// Profile describes how one target is compiled: which logical
// environment asked for the build, the compiler-observable settings
// (optimization, debug info, codegen parallelism, plugin mode, test
// harness) and where under the target directory output lands. Profiles
// are immutable values: the fluent setters return modified copies, so a
// profile attached to one target never changes under another.
type Profile struct {
	env          string
	optLevel     uint
	codegenUnits uint
	codegenSet   bool
	debug        bool
	test         bool
	doctest      bool
	doc          bool
	dest         string
	plugin       bool
	harness      bool
}

// baseProfile is the shared baseline every preset starts from.
func baseProfile() Profile {
	return Profile{harness: true}
}

// DefaultDevProfile is the plain development build: unoptimized, with
// debug info, run in the default environment only.
func DefaultDevProfile() Profile {
	p := baseProfile()
	p.env = "compile"
	p.debug = true
	return p
}

func DefaultTestProfile() Profile {
	p := baseProfile()
	p.env = "test"
	p.debug = true
	p.test = true
	return p
}

func DefaultBenchProfile() Profile {
	p := baseProfile()
	p.env = "bench"
	p.optLevel = 3
	p.test = true
	p.dest = "release"
	return p
}

func DefaultReleaseProfile() Profile {
	p := baseProfile()
	p.env = "release"
	p.optLevel = 3
	p.dest = "release"
	return p
}

func DefaultDocProfile() Profile {
	p := baseProfile()
	p.env = "doc"
	p.doc = true
	return p
}

func (p Profile) IsCompile() bool {
	return p.env == "compile"
}

func (p Profile) IsDoc() bool {
	return p.doc
}

func (p Profile) IsTest() bool {
	return p.test
}

func (p Profile) UsesTestHarness() bool {
	return p.harness
}

func (p Profile) IsDoctest() bool {
	return p.doctest
}

func (p Profile) IsPlugin() bool {
	return p.plugin
}

func (p Profile) GetOptLevel() uint {
	return p.optLevel
}

// GetCodegenUnits reports the codegen-unit override; ok is false when
// the profile leaves the count to the compiler default.
func (p Profile) GetCodegenUnits() (uint, bool) {
	return p.codegenUnits, p.codegenSet
}

func (p Profile) GetDebug() bool {
	return p.debug
}

func (p Profile) GetEnv() string {
	return p.env
}

// GetDest reports the destination-subdirectory override; ok is false
// when output goes to the default location.
func (p Profile) GetDest() (string, bool) {
	return p.dest, p.dest != ""
}

func (p Profile) OptLevel(level uint) Profile {
	p.optLevel = level
	return p
}

func (p Profile) CodegenUnits(units uint) Profile {
	p.codegenUnits = units
	p.codegenSet = true
	return p
}

func (p Profile) Debug(debug bool) Profile {
	p.debug = debug
	return p
}

func (p Profile) Test(test bool) Profile {
	p.test = test
	return p
}

func (p Profile) Doctest(doctest bool) Profile {
	p.doctest = doctest
	return p
}

func (p Profile) Doc(doc bool) Profile {
	p.doc = doc
	return p
}

func (p Profile) Plugin(plugin bool) Profile {
	p.plugin = plugin
	return p
}

func (p Profile) Harness(harness bool) Profile {
	p.harness = harness
	return p
}

// Fingerprint is the output-identity digest of a Profile: equal
// fingerprints mean equal compiled bytes, so artifacts may be shared;
// unequal fingerprints must land on distinct output paths.
type Fingerprint [32]byte

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first 16 hex characters, the form shown in listings.
func (f Fingerprint) Short() string {
	return hex.EncodeToString(f[:8])
}

// profileFingerprint is the explicit tuple of fingerprint-relevant
// fields. env, doc, test and doctest are deliberately absent: they
// decide where a build result is reported or whether a harness entry
// point is run, not what is compiled into the output file. Every field
// added to Profile must be classified here, one way or the other —
// never switch this to hashing the whole struct.
type profileFingerprint struct {
	OptLevel     uint
	CodegenUnits uint
	CodegenSet   bool
	Debug        bool
	Plugin       bool
	Dest         string
	Harness      bool
}

// Fingerprint computes the profile's output-identity digest. Total and
// pure: two profiles differing only in env/doc/test/doctest always
// fingerprint equal.
func (p Profile) Fingerprint() Fingerprint {
	return Fingerprint(util.CanonicalDigest(fingerprintDomain, profileFingerprint{
		OptLevel:     p.optLevel,
		CodegenUnits: p.codegenUnits,
		CodegenSet:   p.codegenSet,
		Debug:        p.debug,
		Plugin:       p.plugin,
		Dest:         p.dest,
		Harness:      p.harness,
	}))
}
