// Package config provides Config loading for retemplate.
// Config is read from retemplate.yaml in the working directory. A missing file
// returns the built-in defaults without error. CLI flags (bound via cobra)
// override config file values by mutating the returned struct after loading.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up when --config is not given.
const DefaultFileName = "retemplate.yaml"

// Default values for Config fields.
const (
	DefaultSourceDir  = ".bmad-core/templates"
	DefaultDestDir    = "src/rapid/templates"
	DefaultBrand      = "RAPID-AI"
	DefaultBrandShort = "RAPID"
)

// DefaultFiles lists the templates converted when the config names none.
func DefaultFiles() []string {
	return []string{
		"architecture-tmpl.yaml",
		"brainstorming-output-tmpl.yaml",
		"brownfield-architecture-tmpl.yaml",
		"brownfield-prd-tmpl.yaml",
		"competitor-analysis-tmpl.yaml",
		"front-end-architecture-tmpl.yaml",
		"front-end-spec-tmpl.yaml",
		"fullstack-architecture-tmpl.yaml",
		"market-research-tmpl.yaml",
		"prd-tmpl.yaml",
		"project-brief-tmpl.yaml",
		"qa-gate-tmpl.yaml",
		"story-tmpl.yaml",
	}
}

// Config holds the inputs of a conversion run.
type Config struct {
	SourceDir  string   `yaml:"source_dir"`
	DestDir    string   `yaml:"dest_dir"`
	Brand      string   `yaml:"brand"`
	BrandShort string   `yaml:"brand_short"`
	Files      []string `yaml:"files"`
	DryRun     bool     `yaml:"-"`
}

// Defaults returns a Config populated with the built-in defaults.
func Defaults() Config {
	return Config{
		SourceDir:  DefaultSourceDir,
		DestDir:    DefaultDestDir,
		Brand:      DefaultBrand,
		BrandShort: DefaultBrandShort,
		Files:      DefaultFiles(),
	}
}

// partialConfig distinguishes a field being absent (nil) from a field being
// explicitly set to its zero value.
type partialConfig struct {
	SourceDir  *string   `yaml:"source_dir"`
	DestDir    *string   `yaml:"dest_dir"`
	Brand      *string   `yaml:"brand"`
	BrandShort *string   `yaml:"brand_short"`
	Files      *[]string `yaml:"files"`
}

// ParseError is returned when the config file exists but is not valid YAML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads the config file at path. If the file does not exist, defaults
// are returned without error. Fields absent from the file keep their default.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var partial partialConfig
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if partial.SourceDir != nil {
		cfg.SourceDir = *partial.SourceDir
	}
	if partial.DestDir != nil {
		cfg.DestDir = *partial.DestDir
	}
	if partial.Brand != nil {
		cfg.Brand = *partial.Brand
	}
	if partial.BrandShort != nil {
		cfg.BrandShort = *partial.BrandShort
	}
	if partial.Files != nil {
		cfg.Files = *partial.Files
	}

	return &cfg, nil
}

// Validate reports the first field that would make a run meaningless.
func (c *Config) Validate() error {
	switch {
	case c.SourceDir == "":
		return errors.New("source_dir must not be empty")
	case c.DestDir == "":
		return errors.New("dest_dir must not be empty")
	case len(c.Files) == 0:
		return errors.New("files must list at least one template")
	}
	return nil
}
