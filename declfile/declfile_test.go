package declfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vhbit/cargo/manifest"
)

const fullDecl = `package:
  name: mylib
  version: 0.1.0
  authors: ["A Author <a@example.com>"]
  build: ["./configure", "make"]
  exclude: ["target/*"]
dependencies:
  serde: "^1.0"
lib:
  name: mylib
  crate_type: [rlib, dylib]
bin:
  - name: mycli
example:
  - name: demo
test:
  - name: integration
bench:
  - name: speed
`

var fullDeclSources = []string{
	"src/mylib.rs",
	"src/bin/mycli.rs",
	"examples/demo.rs",
	"tests/integration.rs",
	"benches/speed.rs",
}

func writePackage(t *testing.T, decl string, sources []string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DeclFileName), []byte(decl), 0644); err != nil {
		t.Fatalf("write declaration: %v", err)
	}
	for _, source := range sources {
		path := filepath.Join(dir, source)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("// source\n"), 0644); err != nil {
			t.Fatalf("write source: %v", err)
		}
	}
	return dir
}

func countByNameEnv(targets []manifest.Target) map[string][]string {
	envs := map[string][]string{}
	for _, target := range targets {
		envs[target.GetName()] = append(envs[target.GetName()], target.GetProfile().GetEnv())
	}
	return envs
}

func TestLoadManifestTargetMatrix(t *testing.T) {
	dir := writePackage(t, fullDecl, fullDeclSources)
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.GetWarnings()) != 0 {
		t.Errorf("clean declaration produced warnings: %v", m.GetWarnings())
	}

	envs := countByNameEnv(m.GetTargets())
	tests := []struct {
		name string
		want []string
	}{
		{"mylib", []string{"compile", "test", "bench", "release", "doc"}},
		{"mycli", []string{"compile", "test", "bench", "release"}},
		{"demo", []string{"compile", "test"}},
		{"integration", []string{"test"}},
		{"speed", []string{"bench"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := envs[test.name]
			if len(got) != len(test.want) {
				t.Fatalf("envs for %s = %v, want %v", test.name, got, test.want)
			}
			for i := range test.want {
				if got[i] != test.want[i] {
					t.Errorf("envs for %s = %v, want %v", test.name, got, test.want)
					break
				}
			}
		})
	}
	if total := len(m.GetTargets()); total != 13 {
		t.Errorf("total targets = %d, want 13", total)
	}
}

func TestLoadManifestMetadataAssignment(t *testing.T) {
	dir := writePackage(t, fullDecl, fullDeclSources)
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	stems := map[string]string{}
	for _, target := range m.GetTargets() {
		switch target.GetName() {
		case "mycli", "demo":
			if target.GetMetadata() != nil {
				t.Errorf("%s should carry no metadata", target.GetName())
			}
		default:
			if target.GetMetadata() == nil {
				t.Errorf("%s should carry metadata", target.GetName())
				continue
			}
			stems[target.GetName()] = target.FileStem()
		}
	}
	if stems["mylib"] == stems["integration"] || stems["integration"] == stems["speed"] {
		t.Errorf("metadata suffixes should differ per unit: %v", stems)
	}
	for name, stem := range stems {
		if !strings.HasPrefix(stem, name+"-") {
			t.Errorf("stem %q should be %s plus a suffix", stem, name)
		}
	}
}

func TestLoadManifestLibDetails(t *testing.T) {
	dir := writePackage(t, fullDecl, fullDeclSources)
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	var doctest int
	for _, target := range m.GetTargets() {
		if target.GetName() != "mylib" {
			continue
		}
		types := target.RustcCrateTypes()
		if len(types) != 2 || types[0] != "rlib" || types[1] != "dylib" {
			t.Errorf("crate types = %v, want [rlib dylib]", types)
		}
		if target.GetProfile().IsDoctest() {
			if target.GetProfile().GetEnv() != "test" {
				t.Errorf("doctest set on %s profile, want test only", target.GetProfile().GetEnv())
			}
			doctest++
		}
	}
	if doctest != 1 {
		t.Errorf("doctest targets = %d, want 1", doctest)
	}

	if m.GetTargetDir() != filepath.Join(dir, "target") {
		t.Errorf("target dir = %q", m.GetTargetDir())
	}
	if m.GetDocDir() != filepath.Join(dir, "target", "doc") {
		t.Errorf("doc dir = %q", m.GetDocDir())
	}
	if len(m.GetSourceIds()) != 2 {
		t.Errorf("sources = %v, want package path + registry", m.GetSourceIds())
	}
	if len(m.GetBuild()) != 2 || m.GetBuild()[0] != "./configure" {
		t.Errorf("build = %v", m.GetBuild())
	}
}

func TestBinPathDefaults(t *testing.T) {
	decl := `package:
  name: mycli
  version: 0.1.0
bin:
  - name: mycli
  - name: helper
`
	dir := writePackage(t, decl, []string{"src/main.rs", "src/bin/helper.rs"})
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	paths := map[string]string{}
	for _, target := range m.GetTargets() {
		paths[target.GetName()] = target.GetSrcPath()
	}
	if paths["mycli"] != filepath.Join("src", "main.rs") {
		t.Errorf("package-named bin path = %q, want src/main.rs", paths["mycli"])
	}
	if paths["helper"] != filepath.Join("src", "bin", "helper.rs") {
		t.Errorf("other bin path = %q, want src/bin/helper.rs", paths["helper"])
	}
}

func TestDeprecatedBareBuildString(t *testing.T) {
	decl := `package:
  name: mylib
  version: 0.1.0
  build: make
lib:
  name: mylib
`
	dir := writePackage(t, decl, []string{"src/mylib.rs"})
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.GetBuild()) != 1 || m.GetBuild()[0] != "make" {
		t.Errorf("build = %v, want [make]", m.GetBuild())
	}
	if !hasWarningContaining(m.GetWarnings(), "deprecated") {
		t.Errorf("bare build string should warn, got %v", m.GetWarnings())
	}
}

func TestUntokenizableBuildCommandWarns(t *testing.T) {
	decl := `package:
  name: mylib
  version: 0.1.0
  build: ["echo 'unterminated"]
lib:
  name: mylib
`
	dir := writePackage(t, decl, []string{"src/mylib.rs"})
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if !hasWarningContaining(m.GetWarnings(), "does not tokenize") {
		t.Errorf("bad build command should warn, got %v", m.GetWarnings())
	}
}

func TestMissingSourceWarns(t *testing.T) {
	decl := `package:
  name: mylib
  version: 0.1.0
lib:
  name: mylib
`
	dir := writePackage(t, decl, nil)
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if !hasWarningContaining(m.GetWarnings(), "does not exist") {
		t.Errorf("missing source should warn, got %v", m.GetWarnings())
	}
}

func TestEmptyConstraintWarnsAndAssumesWildcard(t *testing.T) {
	decl := `package:
  name: mylib
  version: 0.1.0
dependencies:
  anything: ""
lib:
  name: mylib
`
	dir := writePackage(t, decl, []string{"src/mylib.rs"})
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if !hasWarningContaining(m.GetWarnings(), "assuming *") {
		t.Errorf("empty constraint should warn, got %v", m.GetWarnings())
	}
	deps := m.GetDependencies()
	if len(deps) != 1 || deps[0].GetVersionReq().String() != "*" {
		t.Errorf("dependencies = %v, want single * constraint", deps)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		decl    string
		wantSub string
	}{
		{
			"unknown field",
			"package:\n  name: mylib\n  version: 0.1.0\n  bogus: true\nlib:\n  name: mylib\n",
			"failed to parse declaration",
		},
		{
			"missing version",
			"package:\n  name: mylib\nlib:\n  name: mylib\n",
			"invalid version",
		},
		{
			"missing name",
			"package:\n  version: 0.1.0\nlib:\n  name: mylib\n",
			"name is empty",
		},
		{
			"no targets",
			"package:\n  name: mylib\n  version: 0.1.0\n",
			"no lib, bin, example, test or bench targets",
		},
		{
			"bad constraint",
			"package:\n  name: mylib\n  version: 0.1.0\ndependencies:\n  serde: \">>nope\"\nlib:\n  name: mylib\n",
			"invalid version requirement",
		},
		{
			"unnamed bin",
			"package:\n  name: mylib\n  version: 0.1.0\nbin:\n  - path: src/main.rs\n",
			"missing a name",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir := writePackage(t, test.decl, nil)
			_, err := LoadManifest(dir)
			if err == nil {
				t.Fatal("LoadManifest should fail")
			}
			if !strings.Contains(err.Error(), test.wantSub) {
				t.Errorf("error = %v, want substring %q", err, test.wantSub)
			}
		})
	}
}

func TestInvalidCrateTypeError(t *testing.T) {
	decl := `package:
  name: mylib
  version: 0.1.0
lib:
  name: mylib
  crate_type: [rlib, banana]
`
	dir := writePackage(t, decl, []string{"src/mylib.rs"})
	_, err := LoadManifest(dir)
	if err == nil {
		t.Fatal("invalid crate type should fail")
	}
	var invalid *manifest.InvalidCrateTypeError
	if !errors.As(err, &invalid) {
		t.Fatalf("error type = %T, want InvalidCrateTypeError", err)
	}
	if invalid.Value != "banana" {
		t.Errorf("error value = %q, want banana", invalid.Value)
	}
}

func TestParseFileMissing(t *testing.T) {
	err := ParseFile(filepath.Join(t.TempDir(), DeclFileName), &Declaration{})
	if err == nil {
		t.Fatal("missing file should fail")
	}
	if !strings.Contains(err.Error(), "failed to read declaration") {
		t.Errorf("error = %v", err)
	}
}

func hasWarningContaining(warnings []string, sub string) bool {
	for _, warning := range warnings {
		if strings.Contains(warning, sub) {
			return true
		}
	}
	return false
}
