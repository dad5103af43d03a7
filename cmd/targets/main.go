package targets

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/vhbit/cargo/declfile"
	"github.com/vhbit/cargo/logger"
	"github.com/vhbit/cargo/manifest"
	"github.com/vhbit/cargo/shell"
)

var output = "table"

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "targets [dir]",
	Short: "List the planned build targets of a package",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		noColor, _ := cmd.Flags().GetBool("no-color")
		logger.Init(verbose, false)
		sh := shell.Stdio(noColor, verbose)

		m, err := declfile.LoadManifest(dir)
		if err != nil {
			return err
		}
		for _, warning := range m.GetWarnings() {
			sh.Warn(warning)
		}

		switch output {
		case "table":
			rows := [][]string{}
			for _, target := range m.GetTargets() {
				profile := target.GetProfile()
				rows = append(rows, []string{
					target.GetName(),
					strings.Join(target.RustcCrateTypes(), ","),
					profile.GetEnv(),
					fmt.Sprintf("%d", profile.GetOptLevel()),
					target.FileStem(),
					profile.Fingerprint().Short(),
				})
			}
			return sh.Say(shell.RenderTable(
				[]string{"NAME", "KIND", "ENV", "OPT", "FILE STEM", "FINGERPRINT"}, rows))
		case "json":
			data, err := json.MarshalIndent(m.GetTargets(), "", "  ")
			if err != nil {
				return err
			}
			return sh.Say(string(data))
		case "yaml":
			view := manifest.Serialize(m).Targets
			data, err := yaml.Marshal(view)
			if err != nil {
				return err
			}
			return sh.Say(strings.TrimRight(string(data), "\n"))
		}
		return fmt.Errorf("unknown output format %q, expected table, json or yaml", output)
	},
}

func init() {
	flags := Cmd.Flags()
	flags.StringVarP(&output, "output", "o", output, "output format: table, json or yaml")
}
