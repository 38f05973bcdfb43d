package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robertgumeny/retemplate/internal/batch"
	"github.com/robertgumeny/retemplate/internal/config"
	"github.com/robertgumeny/retemplate/internal/log"
	"github.com/robertgumeny/retemplate/internal/report"
	"github.com/robertgumeny/retemplate/internal/rewrite"
)

// transformFlags holds CLI flag values that override retemplate.yaml settings.
// Only flags explicitly changed by the user are applied (checked via cmd.Flags().Changed).
var transformFlags struct {
	configPath string
	sourceDir  string
	destDir    string
	brand      string
	brandShort string
	files      []string
	dryRun     bool
}

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Convert the template files",
	Long:  "Read each listed template from the source directory, rewrite it, and write it to the destination directory.",
	Args:  cobra.NoArgs,
	RunE:  runTransform,
}

func init() {
	f := transformCmd.Flags()
	f.StringVar(&transformFlags.configPath, "config", config.DefaultFileName, "path to the config file")
	f.StringVar(&transformFlags.sourceDir, "source", "", "override source_dir from retemplate.yaml")
	f.StringVar(&transformFlags.destDir, "dest", "", "override dest_dir from retemplate.yaml")
	f.StringVar(&transformFlags.brand, "brand", "", "override brand from retemplate.yaml")
	f.StringVar(&transformFlags.brandShort, "brand-short", "", "override brand_short from retemplate.yaml")
	f.StringSliceVar(&transformFlags.files, "file", nil, "template to convert; repeat to list several (overrides files)")
	f.BoolVar(&transformFlags.dryRun, "dry-run", false, "transform without writing any files")
}

func runTransform(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(transformFlags.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.SourceDir = transformFlags.sourceDir
	}
	if flags.Changed("dest") {
		cfg.DestDir = transformFlags.destDir
	}
	if flags.Changed("brand") {
		cfg.Brand = transformFlags.brand
	}
	if flags.Changed("brand-short") {
		cfg.BrandShort = transformFlags.brandShort
	}
	if flags.Changed("file") {
		cfg.Files = transformFlags.files
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = transformFlags.dryRun
	}

	_, err = transform(cfg)
	return err
}

// transform is the testable core of the transform command.
func transform(cfg *config.Config) (*batch.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	rw := rewrite.New(rewrite.Branding{Name: cfg.Brand, Short: cfg.BrandShort})

	log.Section(fmt.Sprintf("BMAD → %s Template Transformation", rw.Branding().Name))

	res, err := batch.Run(batch.Options{
		SourceDir: cfg.SourceDir,
		DestDir:   cfg.DestDir,
		Files:     cfg.Files,
		DryRun:    cfg.DryRun,
	}, rw)
	if err != nil {
		return res, err
	}

	report.PrintSummary(res, rewrite.Categories(rw.Branding()))
	return res, nil
}
