package pkgid

import (
	"github.com/Masterminds/semver/v3"
)

// Summary is the resolver-facing digest of one package: its identity
// plus the dependencies it declares. A Manifest references a Summary;
// dependency resolution itself happens outside this layer.
type Summary struct {
	packageId    PackageId
	dependencies []Dependency
}

func NewSummary(id PackageId, dependencies []Dependency) Summary {
	return Summary{packageId: id, dependencies: dependencies}
}

func (s Summary) GetPackageId() PackageId {
	return s.packageId
}

func (s Summary) GetName() string {
	return s.packageId.GetName()
}

func (s Summary) GetVersion() *semver.Version {
	return s.packageId.GetVersion()
}

func (s Summary) GetDependencies() []Dependency {
	return s.dependencies
}
