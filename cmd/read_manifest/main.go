package read_manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/vhbit/cargo/declfile"
	"github.com/vhbit/cargo/logger"
	"github.com/vhbit/cargo/shell"
)

var output = "json"

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "read-manifest [dir]",
	Short: "Print the serialized manifest of a package",
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
		case "json":
			data, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return err
			}
			return sh.Say(string(data))
		case "yaml":
			data, err := yaml.Marshal(m)
			if err != nil {
				return err
			}
			return sh.Say(strings.TrimRight(string(data), "\n"))
		}
		return fmt.Errorf("unknown output format %q, expected json or yaml", output)
	},
}

func init() {
	flags := Cmd.Flags()
	flags.StringVarP(&output, "output", "o", output, "output format: json or yaml")
}
