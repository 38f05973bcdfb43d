package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/robertgumeny/retemplate/internal/log"
)

var version = "v0.1.0"

var rootCmd = &cobra.Command{
	Use:           "retemplate",
	Short:         "retemplate converts BMAD templates into RAPID-AI templates",
	SilenceErrors: true,
}

func Execute() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command tree with args and returns the process exit code.
// Fatal errors are reported through log.Error.
func run(args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		return 1
	}
	return 0
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(initCmd)
}
