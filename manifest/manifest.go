package manifest

import (
	"github.com/Masterminds/semver/v3"

	"github.com/vhbit/cargo/pkgid"
)

// Manifest is the finalized description of one package's build
// configuration: the package summary, its declared targets, output
// directories, auxiliary sources, build-script commands and exclusion
// patterns. It is constructed once by the declaration loader and never
// mutated afterwards, with one exception: non-fatal warnings collected
// while loading are appended through AddWarning, strictly before the
// manifest is handed to concurrent readers.
type Manifest struct {
	summary   pkgid.Summary
	authors   []string
	targets   []Target
	targetDir string
	docDir    string
	sources   []pkgid.SourceId
	build     []string
	warnings  []string
	exclude   []string
}

func NewManifest(summary pkgid.Summary, authors []string, targets []Target,
	targetDir string, docDir string, sources []pkgid.SourceId,
	build []string, exclude []string) *Manifest {
	return &Manifest{
		summary:   summary,
		authors:   authors,
		targets:   targets,
		targetDir: targetDir,
		docDir:    docDir,
		sources:   sources,
		build:     build,
		exclude:   exclude,
	}
}

func (m *Manifest) GetSummary() pkgid.Summary {
	return m.summary
}

func (m *Manifest) GetPackageId() pkgid.PackageId {
	return m.summary.GetPackageId()
}

func (m *Manifest) GetName() string {
	return m.summary.GetName()
}

func (m *Manifest) GetVersion() *semver.Version {
	return m.summary.GetVersion()
}

func (m *Manifest) GetAuthors() []string {
	return m.authors
}

func (m *Manifest) GetDependencies() []pkgid.Dependency {
	return m.summary.GetDependencies()
}

func (m *Manifest) GetTargets() []Target {
	return m.targets
}

func (m *Manifest) GetTargetDir() string {
	return m.targetDir
}

func (m *Manifest) GetDocDir() string {
	return m.docDir
}

func (m *Manifest) GetSourceIds() []pkgid.SourceId {
	return m.sources
}

func (m *Manifest) GetBuild() []string {
	return m.build
}

// AddWarning records a non-fatal condition noticed while loading the
// declaration. Warnings are data for the caller to display, never
// failures. Single loader phase only; not safe for concurrent use.
func (m *Manifest) AddWarning(warning string) {
	m.warnings = append(m.warnings, warning)
}

// GetWarnings returns accumulated warnings in insertion order.
func (m *Manifest) GetWarnings() []string {
	return m.warnings
}

func (m *Manifest) GetExclude() []string {
	return m.exclude
}
