package cmd

import (
	"os"

	"github.com/vhbit/cargo/cmd/artifacts"
	"github.com/vhbit/cargo/cmd/plan"
	"github.com/vhbit/cargo/cmd/read_manifest"
	"github.com/vhbit/cargo/cmd/targets"

	"github.com/spf13/cobra"
)

// RootCmd represents the root command
var RootCmd = &cobra.Command{
	Use:           "cargo",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	RootCmd.PersistentFlags().Bool("verbose", false, "verbose status output")
	RootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	RootCmd.AddCommand(plan.Cmd)
	RootCmd.AddCommand(targets.Cmd)
	RootCmd.AddCommand(read_manifest.Cmd)
	RootCmd.AddCommand(artifacts.Cmd)
}

var genBashCompletionCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completions file",
	Run: func(cmd *cobra.Command, args []string) {
		RootCmd.GenBashCompletion(os.Stdout)
	},
}
