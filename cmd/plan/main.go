package plan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vhbit/cargo/declfile"
	"github.com/vhbit/cargo/logger"
	"github.com/vhbit/cargo/planindex"
	"github.com/vhbit/cargo/shell"
)

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "plan [dir]",
	Short: "Compute and persist the artifact plan for a package",
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
		sh.Status("Planning", m.GetPackageId().String())

		artifacts, collisions := planindex.Plan(m)
		logger.Debug("plan computed", "artifacts", len(artifacts), "collisions", len(collisions))
		for _, c := range collisions {
			sh.Error(fmt.Sprintf("output collision on %s (kind %s, dest %q): fingerprints %s and %s",
				c.FileStem, c.Kind, c.Dest, c.First.Fingerprint[:16], c.Second.Fingerprint[:16]))
		}

		store, err := planindex.Open(m.GetTargetDir())
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Write(artifacts); err != nil {
			return err
		}
		sh.Status("Indexed", fmt.Sprintf("%d artifacts", len(artifacts)))
		sh.Verbose(func(v *shell.MultiShell) error {
			for _, artifact := range artifacts {
				v.Say(fmt.Sprintf("  %s %v -> %s", artifact.Name, artifact.Envs, artifact.FileStem))
			}
			return nil
		})

		if len(collisions) > 0 {
			return fmt.Errorf("%d artifact output collisions", len(collisions))
		}
		return nil
	},
}
