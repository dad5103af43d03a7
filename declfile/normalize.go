package declfile

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/google/shlex"

	"github.com/vhbit/cargo/manifest"
	"github.com/vhbit/cargo/pkgid"
	"github.com/vhbit/cargo/util"
)

// LoadManifest reads the Cargo.yaml in dir and normalizes it into a
// Manifest. This is the single construction point for manifests: the
// returned value is immutable apart from the warnings already attached.
func LoadManifest(dir string) (*manifest.Manifest, error) {
	pkgDir, err := filepath.Abs(dir)
	if err != nil {
		pkgDir = dir
	}
	decl := &Declaration{}
	if err := ParseFile(filepath.Join(pkgDir, DeclFileName), decl); err != nil {
		return nil, err
	}
	return ToManifest(decl, pkgDir)
}

// ToManifest normalizes a parsed declaration into a Manifest rooted at
// pkgDir. Recoverable oddities become warnings on the manifest; real
// declaration errors abort.
func ToManifest(decl *Declaration, pkgDir string) (*manifest.Manifest, error) {
	warnings := []string{}

	id, err := pkgid.NewPackageId(decl.Package.Name, decl.Package.Version, pkgid.PathSource(pkgDir))
	if err != nil {
		return nil, err
	}

	dependencies, sources, depWarnings, err := normalizeDependencies(decl.Dependencies, pkgDir)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, depWarnings...)

	if decl.Package.Build.Bare {
		warnings = append(warnings, "the bare string form of `build` is deprecated, use a list of commands")
	}
	for _, command := range decl.Package.Build.Commands {
		if _, err := shlex.Split(command); err != nil {
			warnings = append(warnings, fmt.Sprintf("build command %q does not tokenize: %v", command, err))
		}
	}

	targets, targetWarnings, err := normalizeTargets(decl, id, pkgDir)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, targetWarnings...)
	if len(targets) == 0 {
		return nil, fmt.Errorf("package %s declares no lib, bin, example, test or bench targets", id.GetName())
	}

	targetDir := filepath.Join(pkgDir, "target")
	docDir := filepath.Join(targetDir, "doc")

	m := manifest.NewManifest(pkgid.NewSummary(id, dependencies), decl.Package.Authors,
		targets, targetDir, docDir, sources, decl.Package.Build.Commands, decl.Package.Exclude)
	for _, warning := range warnings {
		m.AddWarning(warning)
	}
	return m, nil
}

// normalizeDependencies validates the declared dependency map and
// collects the auxiliary source list: the package's own path source
// first, then each distinct dependency source in first-seen order.
// Sorted by name so output is deterministic across runs.
func normalizeDependencies(declared map[string]string, pkgDir string) ([]pkgid.Dependency, []pkgid.SourceId, []string, error) {
	warnings := []string{}
	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)

	sources := []pkgid.SourceId{pkgid.PathSource(pkgDir)}
	seen := map[string]bool{sources[0].String(): true}

	dependencies := make([]pkgid.Dependency, 0, len(names))
	for _, name := range names {
		req := declared[name]
		if req == "" {
			warnings = append(warnings, fmt.Sprintf("dependency %s has no version requirement, assuming *", name))
			req = "*"
		}
		dep, err := pkgid.NewDependency(name, req, pkgid.CentralRegistry())
		if err != nil {
			return nil, nil, nil, err
		}
		dependencies = append(dependencies, dep)
		if key := dep.GetSource().String(); !seen[key] {
			seen[key] = true
			sources = append(sources, dep.GetSource())
		}
	}
	return dependencies, sources, warnings, nil
}

// normalizeTargets expands the declared units into the full target
// matrix: a library is planned under every profile it can run in, a
// binary under every executable profile, and the narrower units only
// under their own.
func normalizeTargets(decl *Declaration, id pkgid.PackageId, pkgDir string) ([]manifest.Target, []string, error) {
	warnings := []string{}
	targets := []manifest.Target{}
	metadata := id.GenerateMetadata()

	checkSrc := func(srcPath string) {
		if !util.Exists(filepath.Join(pkgDir, srcPath)) {
			warnings = append(warnings, fmt.Sprintf("source file %s does not exist", srcPath))
		}
	}

	if lib := decl.Lib; lib != nil {
		name := lib.Name
		if name == "" {
			name = id.GetName()
		}
		srcPath := lib.Path
		if srcPath == "" {
			srcPath = filepath.Join("src", name+".rs")
		}
		crateTypes := lib.CrateType
		if len(crateTypes) == 0 {
			crateTypes = []string{"lib"}
		}
		kinds, err := manifest.LibKindsFromStrings(crateTypes)
		if err != nil {
			return nil, nil, err
		}
		checkSrc(srcPath)

		testProfile := manifest.DefaultTestProfile().Doctest(true).Harness(harnessOf(lib.Harness))
		profiles := []manifest.Profile{
			manifest.DefaultDevProfile(),
			testProfile,
			manifest.DefaultBenchProfile(),
			manifest.DefaultReleaseProfile(),
			manifest.DefaultDocProfile(),
		}
		for _, profile := range profiles {
			targets = append(targets, manifest.LibTarget(name, kinds, srcPath, profile.Plugin(lib.Plugin), metadata))
		}
	}

	for _, bin := range decl.Bin {
		if bin.Name == "" {
			return nil, nil, fmt.Errorf("bin target is missing a name")
		}
		srcPath := bin.Path
		if srcPath == "" {
			if bin.Name == id.GetName() {
				srcPath = filepath.Join("src", "main.rs")
			} else {
				srcPath = filepath.Join("src", "bin", bin.Name+".rs")
			}
		}
		checkSrc(srcPath)

		profiles := []manifest.Profile{
			manifest.DefaultDevProfile(),
			manifest.DefaultTestProfile().Harness(harnessOf(bin.Harness)),
			manifest.DefaultBenchProfile(),
			manifest.DefaultReleaseProfile(),
		}
		for _, profile := range profiles {
			targets = append(targets, manifest.BinTarget(bin.Name, srcPath, profile, nil))
		}
	}

	for _, example := range decl.Example {
		if example.Name == "" {
			return nil, nil, fmt.Errorf("example target is missing a name")
		}
		srcPath := example.Path
		if srcPath == "" {
			srcPath = filepath.Join("examples", example.Name+".rs")
		}
		checkSrc(srcPath)
		targets = append(targets,
			manifest.ExampleTarget(example.Name, srcPath, manifest.DefaultDevProfile()),
			manifest.ExampleTarget(example.Name, srcPath, manifest.DefaultTestProfile()))
	}

	for _, test := range decl.Test {
		if test.Name == "" {
			return nil, nil, fmt.Errorf("test target is missing a name")
		}
		srcPath := test.Path
		if srcPath == "" {
			srcPath = filepath.Join("tests", test.Name+".rs")
		}
		checkSrc(srcPath)
		profile := manifest.DefaultTestProfile().Harness(harnessOf(test.Harness))
		targets = append(targets, manifest.TestTarget(test.Name, srcPath, profile, metadata.Mix("test-"+test.Name)))
	}

	for _, bench := range decl.Bench {
		if bench.Name == "" {
			return nil, nil, fmt.Errorf("bench target is missing a name")
		}
		srcPath := bench.Path
		if srcPath == "" {
			srcPath = filepath.Join("benches", bench.Name+".rs")
		}
		checkSrc(srcPath)
		targets = append(targets, manifest.BenchTarget(bench.Name, srcPath,
			manifest.DefaultBenchProfile(), metadata.Mix("bench-"+bench.Name)))
	}

	return targets, warnings, nil
}

// harnessOf applies the default: the test harness is attached unless the
// declaration turns it off.
func harnessOf(declared *bool) bool {
	if declared == nil {
		return true
	}
	return *declared
}
