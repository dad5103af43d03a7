package artifacts

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vhbit/cargo/logger"
	"github.com/vhbit/cargo/planindex"
	"github.com/vhbit/cargo/shell"
	"github.com/vhbit/cargo/util"
)

var output = "table"

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "artifacts [dir]",
	Short: "List the persisted artifact index of a package",
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

		targetDir, err := filepath.Abs(filepath.Join(dir, "target"))
		if err != nil {
			return err
		}
		if !util.Exists(filepath.Join(targetDir, planindex.IndexDirName)) {
			return fmt.Errorf("no artifact index under %s, run `cargo plan` first", targetDir)
		}

		store, err := planindex.Open(targetDir)
		if err != nil {
			return err
		}
		defer store.Close()

		listed, err := store.List()
		if err != nil {
			return err
		}
		logger.Debug("index read", "artifacts", len(listed))

		switch output {
		case "table":
			rows := [][]string{}
			for _, artifact := range listed {
				rows = append(rows, []string{
					artifact.Name,
					strings.Join(artifact.Kind, ","),
					strings.Join(artifact.Envs, ","),
					artifact.FileStem,
					artifact.Dest,
					artifact.Fingerprint[:16],
				})
			}
			return sh.Say(shell.RenderTable(
				[]string{"NAME", "KIND", "ENVS", "FILE STEM", "DEST", "FINGERPRINT"}, rows))
		case "json":
			data, err := json.MarshalIndent(listed, "", "  ")
			if err != nil {
				return err
			}
			return sh.Say(string(data))
		}
		return fmt.Errorf("unknown output format %q, expected table or json", output)
	},
}

func init() {
	flags := Cmd.Flags()
	flags.StringVarP(&output, "output", "o", output, "output format: table or json")
}
