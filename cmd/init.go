package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/robertgumeny/retemplate/internal/config"
	"github.com/robertgumeny/retemplate/internal/log"
	"github.com/robertgumeny/retemplate/internal/templates"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter retemplate.yaml",
	Long:  "Write retemplate.yaml with the default directories, branding, and template list into the current directory.",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite an existing retemplate.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	return initConfig(dir, initFlags.force)
}

// initConfig is the testable core of the init command.
func initConfig(dir string, force bool) error {
	path := filepath.Join(dir, config.DefaultFileName)
	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			return fmt.Errorf("%s already exists; use --force to overwrite", config.DefaultFileName)
		}
	}
	if err := os.WriteFile(path, []byte(templates.StarterConfig), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", config.DefaultFileName, err)
	}
	log.Success(fmt.Sprintf("created %s", path))
	log.Info("edit the file, then run: retemplate transform")
	return nil
}
