package pkgid

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Dependency is one declared requirement: a package name, a semver
// constraint and the source the package should come from. Resolution
// happens elsewhere; this layer only carries the declaration.
type Dependency struct {
	name   string
	req    *semver.Constraints
	source SourceId
}

func NewDependency(name string, req string, source SourceId) (Dependency, error) {
	if name == "" {
		return Dependency{}, fmt.Errorf("dependency name is empty")
	}
	constraints, err := semver.NewConstraint(req)
	if err != nil {
		return Dependency{}, fmt.Errorf("invalid version requirement %q for dependency %s: %w", req, name, err)
	}
	return Dependency{name: name, req: constraints, source: source}, nil
}

func (d Dependency) GetName() string {
	return d.name
}

func (d Dependency) GetVersionReq() *semver.Constraints {
	return d.req
}

func (d Dependency) GetSource() SourceId {
	return d.source
}

// SerializedDependency is the plain projection of a Dependency consumed
// by external tooling.
type SerializedDependency struct {
	Name   string `json:"name"`
	Req    string `json:"req"`
	Source string `json:"source"`
}

func SerializeDependency(d Dependency) SerializedDependency {
	return SerializedDependency{
		Name:   d.name,
		Req:    d.req.String(),
		Source: d.source.String(),
	}
}
