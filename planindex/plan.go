package planindex

import (
	"strings"

	"github.com/vhbit/cargo/manifest"
)

// Artifact is one planned build output: a target merged with every
// profile that produces bit-identical compiled bytes for it. Identity is
// the (name, kind tokens, profile fingerprint) triple; Envs lists the
// logical environments folded into the record, in target order.
type Artifact struct {
	Package     string   `json:"package"`
	Name        string   `json:"name"`
	Kind        []string `json:"kind"`
	Envs        []string `json:"envs"`
	SrcPath     string   `json:"src_path"`
	FileStem    string   `json:"file_stem"`
	Dest        string   `json:"dest"`
	Fingerprint string   `json:"fingerprint"`
}

// Collision reports two artifacts with different identities claiming the
// same output location. A collision is a planning defect the caller must
// surface; it is never silently dropped.
type Collision struct {
	Dest     string   `json:"dest"`
	FileStem string   `json:"file_stem"`
	Kind     string   `json:"kind"`
	First    Artifact `json:"first"`
	Second   Artifact `json:"second"`
}

// Plan computes the canonical artifact set for a manifest. Pure and
// deterministic: targets are folded in declaration order. Targets whose
// fingerprints match on the same name and kinds merge into one artifact;
// distinct artifacts that land on the same (dest, stem, kind) location
// are reported as collisions. Documentation targets produce no compiled
// output and are excluded.
func Plan(m *manifest.Manifest) ([]Artifact, []Collision) {
	pkg := m.GetPackageId().String()

	artifacts := []Artifact{}
	byIdentity := map[string]int{}
	for _, target := range m.GetTargets() {
		profile := target.GetProfile()
		if profile.IsDoc() {
			continue
		}
		kinds := target.RustcCrateTypes()
		fingerprint := profile.Fingerprint().String()
		identity := identityKey(target.GetName(), kinds, fingerprint)

		if index, merged := byIdentity[identity]; merged {
			artifacts[index].Envs = append(artifacts[index].Envs, profile.GetEnv())
			continue
		}
		dest, _ := profile.GetDest()
		byIdentity[identity] = len(artifacts)
		artifacts = append(artifacts, Artifact{
			Package:     pkg,
			Name:        target.GetName(),
			Kind:        kinds,
			Envs:        []string{profile.GetEnv()},
			SrcPath:     target.GetSrcPath(),
			FileStem:    target.FileStem(),
			Dest:        dest,
			Fingerprint: fingerprint,
		})
	}

	collisions := []Collision{}
	claimed := map[string]int{}
	for index, artifact := range artifacts {
		for _, kind := range artifact.Kind {
			location := artifact.Dest + "\x00" + artifact.FileStem + "\x00" + kind
			owner, taken := claimed[location]
			if !taken {
				claimed[location] = index
				continue
			}
			if owner == index {
				// Repeated kind tokens on one artifact are idempotent.
				continue
			}
			collisions = append(collisions, Collision{
				Dest:     artifact.Dest,
				FileStem: artifact.FileStem,
				Kind:     kind,
				First:    artifacts[owner],
				Second:   artifact,
			})
		}
	}

	return artifacts, collisions
}

func identityKey(name string, kinds []string, fingerprint string) string {
	return name + "\x00" + strings.Join(kinds, ",") + "\x00" + fingerprint
}
