package manifest

import (
	"testing"
)

func TestPresetBaselines(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		env     string
		opt     uint
		debug   bool
		test    bool
		doc     bool
		dest    string
	}{
		{"dev", DefaultDevProfile(), "compile", 0, true, false, false, ""},
		{"test", DefaultTestProfile(), "test", 0, true, true, false, ""},
		{"bench", DefaultBenchProfile(), "bench", 3, false, true, false, "release"},
		{"release", DefaultReleaseProfile(), "release", 3, false, false, false, "release"},
		{"doc", DefaultDocProfile(), "doc", 0, false, false, true, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := test.profile
			if p.GetEnv() != test.env {
				t.Errorf("env = %q, want %q", p.GetEnv(), test.env)
			}
			if p.GetOptLevel() != test.opt {
				t.Errorf("opt level = %d, want %d", p.GetOptLevel(), test.opt)
			}
			if p.GetDebug() != test.debug {
				t.Errorf("debug = %v, want %v", p.GetDebug(), test.debug)
			}
			if p.IsTest() != test.test {
				t.Errorf("test = %v, want %v", p.IsTest(), test.test)
			}
			if p.IsDoc() != test.doc {
				t.Errorf("doc = %v, want %v", p.IsDoc(), test.doc)
			}
			dest, _ := p.GetDest()
			if dest != test.dest {
				t.Errorf("dest = %q, want %q", dest, test.dest)
			}
			if _, ok := p.GetCodegenUnits(); ok {
				t.Error("presets should leave codegen units to the compiler default")
			}
			if !p.UsesTestHarness() {
				t.Error("harness should default to true")
			}
		})
	}
}

func TestFingerprintIgnoresBookkeepingFields(t *testing.T) {
	base := DefaultDevProfile()
	tests := []struct {
		name  string
		other Profile
	}{
		{"test flag", base.Test(true)},
		{"doctest flag", base.Doctest(true)},
		{"doc flag", base.Doc(true)},
		{"test and doctest", base.Test(true).Doctest(true)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if base == test.other {
				t.Fatal("profiles should differ structurally")
			}
			if base.Fingerprint() != test.other.Fingerprint() {
				t.Error("bookkeeping fields must not influence the fingerprint")
			}
		})
	}
}

func TestFingerprintSensitiveFields(t *testing.T) {
	base := DefaultDevProfile()
	tests := []struct {
		name  string
		other Profile
	}{
		{"opt level", base.OptLevel(2)},
		{"codegen units", base.CodegenUnits(4)},
		{"codegen units zero", base.CodegenUnits(0)},
		{"debug", base.Debug(false)},
		{"plugin", base.Plugin(true)},
		{"harness", base.Harness(false)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if base.Fingerprint() == test.other.Fingerprint() {
				t.Error("compiler-observable fields must change the fingerprint")
			}
		})
	}
}

// The bench and release presets differ only in env and the test flag, so
// they describe the same compiled output. Same for dev and test.
func TestPresetFingerprintEquivalences(t *testing.T) {
	if DefaultBenchProfile().Fingerprint() != DefaultReleaseProfile().Fingerprint() {
		t.Error("bench and release presets should fingerprint equal")
	}
	if DefaultDevProfile().Fingerprint() != DefaultTestProfile().Fingerprint() {
		t.Error("dev and test presets should fingerprint equal")
	}
	if DefaultDevProfile().Fingerprint() == DefaultDocProfile().Fingerprint() {
		t.Error("dev and doc presets differ in debug and should not fingerprint equal")
	}
	if DefaultDevProfile().Fingerprint() == DefaultReleaseProfile().Fingerprint() {
		t.Error("dev and release presets should not fingerprint equal")
	}
}

// dest has no setter; presets are the only way to pick a destination.
// Dev reshaped to the release compiler settings matches the release
// preset in everything fingerprint-relevant except dest, and env is
// excluded, so any fingerprint difference left is dest alone.
func TestFingerprintSensitiveToDest(t *testing.T) {
	reshaped := DefaultDevProfile().Debug(false).OptLevel(3)
	release := DefaultReleaseProfile()
	if _, ok := reshaped.GetDest(); ok {
		t.Fatal("dev-derived profile should keep the default destination")
	}
	if _, ok := release.GetDest(); !ok {
		t.Fatal("release preset should carry a dest override")
	}
	if reshaped.Fingerprint() == release.Fingerprint() {
		t.Error("destination override must change the fingerprint")
	}
}

func TestSettersReturnCopies(t *testing.T) {
	original := DefaultDevProfile()
	derived := original.OptLevel(3).Plugin(true).CodegenUnits(2)

	if original.GetOptLevel() != 0 {
		t.Error("setter mutated the original profile")
	}
	if original.IsPlugin() {
		t.Error("setter mutated the original profile")
	}
	if _, ok := original.GetCodegenUnits(); ok {
		t.Error("setter mutated the original profile")
	}
	if derived.GetOptLevel() != 3 || !derived.IsPlugin() {
		t.Error("derived profile missing applied settings")
	}
	if units, ok := derived.GetCodegenUnits(); !ok || units != 2 {
		t.Errorf("derived codegen units = %d, %v, want 2, true", units, ok)
	}
}

func TestProfileStructuralEquality(t *testing.T) {
	if DefaultDevProfile() != DefaultDevProfile() {
		t.Error("identical presets should compare equal")
	}
	if DefaultDevProfile() == DefaultTestProfile() {
		t.Error("dev and test presets are structurally different")
	}
	if DefaultDevProfile() == DefaultDevProfile().Doc(true) {
		t.Error("equality is full structural equality, unlike the fingerprint")
	}
}

func TestFingerprintRendering(t *testing.T) {
	fp := DefaultDevProfile().Fingerprint()
	if len(fp.String()) != 64 {
		t.Errorf("String length = %d, want 64", len(fp.String()))
	}
	if fp.Short() != fp.String()[:16] {
		t.Errorf("Short = %q, want prefix of %q", fp.Short(), fp.String())
	}
}
