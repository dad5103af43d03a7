package declfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// DeclFileName is the declaration file looked up in a package directory.
const DeclFileName = "Cargo.yaml"

// Declaration is the parsed form of a package's Cargo.yaml, before
// normalization into a Manifest. Parsing is strict: unknown fields are
// rejected so typos fail loudly instead of being ignored.
type Declaration struct {
	Package      PackageDecl       `json:"package"`
	Lib          *LibDecl          `json:"lib"`
	Bin          []TargetDecl      `json:"bin"`
	Example      []TargetDecl      `json:"example"`
	Test         []TargetDecl      `json:"test"`
	Bench        []TargetDecl      `json:"bench"`
	Dependencies map[string]string `json:"dependencies"`

	path string
}

type PackageDecl struct {
	Name    string        `json:"name"`
	Version string        `json:"version"`
	Authors []string      `json:"authors"`
	Build   BuildCommands `json:"build"`
	Exclude []string      `json:"exclude"`
}

type LibDecl struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	CrateType []string `json:"crate_type"`
	Plugin    bool     `json:"plugin"`
	Harness   *bool    `json:"harness"`
}

type TargetDecl struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Harness *bool  `json:"harness"`
}

// BuildCommands accepts the list form and the deprecated bare-string
// form of the build field. Bare records which form was used so the
// loader can warn about the deprecated one.
type BuildCommands struct {
	Commands []string
	Bare     bool
}

func (b *BuildCommands) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		b.Commands = []string{single}
		b.Bare = true
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("build must be a command string or a list of command strings")
	}
	b.Commands = list
	b.Bare = false
	return nil
}

func (b BuildCommands) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Commands)
}

// parse parses a YAML doc into the given Declaration instance.
func parse(raw []byte, decl *Declaration) error {
	return yaml.UnmarshalStrict(raw, decl)
}

// ParseFile parses a package declaration file, which is formatted in
// YAML, and returns a Declaration struct.
func ParseFile(relpath string, decl *Declaration) error {
	if relpath == "" {
		return nil
	}

	// Try to get absolute path. If it fails, fall back to relative path.
	path, abserr := filepath.Abs(relpath)
	if abserr != nil {
		path = relpath
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read declaration at path %s: %w", path, err)
	}

	err = parse(source, decl)
	if err != nil {
		return fmt.Errorf("failed to parse declaration at path %s: %w", path, err)
	}

	decl.path = path

	return nil
}

// GetPath returns the absolute path the declaration was loaded from.
func (d *Declaration) GetPath() string {
	return d.path
}
