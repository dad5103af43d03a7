package manifest

import (
	"encoding/json"

	"github.com/vhbit/cargo/pkgid"
)

// SerializedManifest is the stable external projection of a Manifest:
// a plain tree of strings, numbers and lists for tooling and IDE
// consumption, decoupled from the internal representation. The build
// field is omitted entirely when no build commands are declared, never
// shown as an empty list.
type SerializedManifest struct {
	Name         string                       `json:"name"`
	Version      string                       `json:"version"`
	Dependencies []pkgid.SerializedDependency `json:"dependencies"`
	Authors      []string                     `json:"authors"`
	Targets      []SerializedTarget           `json:"targets"`
	TargetDir    string                       `json:"target_dir"`
	DocDir       string                       `json:"doc_dir"`
	Build        []string                     `json:"build,omitempty"`
}

type SerializedTarget struct {
	Kind     []string          `json:"kind"`
	Name     string            `json:"name"`
	SrcPath  string            `json:"src_path"`
	Profile  SerializedProfile `json:"profile"`
	Metadata *pkgid.Metadata   `json:"metadata"`
}

type SerializedProfile struct {
	Env          string  `json:"env"`
	OptLevel     uint    `json:"opt_level"`
	CodegenUnits *uint   `json:"codegen_units"`
	Debug        bool    `json:"debug"`
	Test         bool    `json:"test"`
	Doctest      bool    `json:"doctest"`
	Doc          bool    `json:"doc"`
	Dest         *string `json:"dest"`
	Plugin       bool    `json:"plugin"`
	Harness      bool    `json:"harness"`
}

func Serialize(m *Manifest) SerializedManifest {
	dependencies := make([]pkgid.SerializedDependency, 0, len(m.GetDependencies()))
	for _, dep := range m.GetDependencies() {
		dependencies = append(dependencies, pkgid.SerializeDependency(dep))
	}
	targets := make([]SerializedTarget, 0, len(m.targets))
	for _, target := range m.targets {
		targets = append(targets, SerializeTarget(target))
	}
	var build []string
	if len(m.build) > 0 {
		build = m.build
	}
	return SerializedManifest{
		Name:         m.GetName(),
		Version:      m.GetVersion().String(),
		Dependencies: dependencies,
		Authors:      m.authors,
		Targets:      targets,
		TargetDir:    m.targetDir,
		DocDir:       m.docDir,
		Build:        build,
	}
}

func SerializeTarget(t Target) SerializedTarget {
	var metadata *pkgid.Metadata
	if t.metadata != nil {
		m := *t.metadata
		metadata = &m
	}
	return SerializedTarget{
		Kind:     t.RustcCrateTypes(),
		Name:     t.name,
		SrcPath:  t.srcPath,
		Profile:  SerializeProfile(t.profile),
		Metadata: metadata,
	}
}

func SerializeProfile(p Profile) SerializedProfile {
	var codegenUnits *uint
	if units, ok := p.GetCodegenUnits(); ok {
		codegenUnits = &units
	}
	var dest *string
	if d, ok := p.GetDest(); ok {
		dest = &d
	}
	return SerializedProfile{
		Env:          p.env,
		OptLevel:     p.optLevel,
		CodegenUnits: codegenUnits,
		Debug:        p.debug,
		Test:         p.test,
		Doctest:      p.doctest,
		Doc:          p.doc,
		Dest:         dest,
		Plugin:       p.plugin,
		Harness:      p.harness,
	}
}

// MarshalJSON renders the manifest through its serialization view, so
// both JSON and YAML output (sigs.k8s.io/yaml goes through JSON tags)
// share one shape.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(Serialize(m))
}

func (t Target) MarshalJSON() ([]byte, error) {
	return json.Marshal(SerializeTarget(t))
}
