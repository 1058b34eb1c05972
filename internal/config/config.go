// Package config loads the YAML settings shared by the pdtgen commands.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/archive"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/parser"
)

// Config holds every project-level setting of a run.
type Config struct {
	Sheets SheetsConfig `yaml:"sheets"`

	// Language is "cn" or "en". Empty reads the setup workbook.
	Language string `yaml:"language"`

	Archive ArchiveConfig `yaml:"archive"`

	Defaults    pdtgen.RowDefaults      `yaml:"defaults"`
	Validations []parser.ListValidation `yaml:"validations"`

	// AEDISTemplates are dropped when the eCRF has no AE.AEDIS variable.
	AEDISTemplates []string `yaml:"aedis_templates"`

	CodeList CodeListConfig `yaml:"code_list"`

	Logging LoggingConfig `yaml:"logging"`
}

// SheetsConfig names the workbook sheets read and written.
type SheetsConfig struct {
	Template     string `yaml:"template"`
	TOC          string `yaml:"toc"`
	Deliverables string `yaml:"deliverables"`
	ListValues   string `yaml:"list_values"`
	ECRF         string `yaml:"ecrf"`
}

// ArchiveConfig names the folder receiving the copy taken before a file is overwritten.
type ArchiveConfig struct {
	Dir string `yaml:"dir"`
}

// CodeListConfig selects the AE action labels of the code-list workbook.
type CodeListConfig struct {
	Sheet string               `yaml:"sheet"`
	Query parser.CodeListQuery `yaml:"query"`
}

// LoggingConfig configures the zap logger of the CLI.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Sheets: SheetsConfig{
			Template:     parser.DefaultTemplateSheet,
			TOC:          parser.DefaultTOCSheet,
			Deliverables: parser.DefaultDeliverablesSheet,
			ListValues:   pdtgen.DefaultListSheet,
		},
		Archive:        ArchiveConfig{Dir: archive.DefaultDirName},
		Defaults:       pdtgen.DefaultRowDefaults(),
		Validations:    pdtgen.DefaultValidations(),
		AEDISTemplates: append([]string(nil), pdtgen.DefaultAEDISTemplates...),
		CodeList:       CodeListConfig{Query: pdtgen.DefaultAEACNQuery()},
		Logging:        LoggingConfig{Level: "info"},
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects settings no run could use.
func (c *Config) Validate() error {
	switch c.Language {
	case "", string(models.LangCN), string(models.LangEN):
	default:
		return fmt.Errorf("invalid language %q (must be cn or en)", c.Language)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}
	for _, v := range c.Validations {
		if v.Column == "" || v.Source == "" {
			return fmt.Errorf("validation entries need both column and source")
		}
	}
	return nil
}

// LogLevel returns the configured level, defaulting to info.
func (c *Config) LogLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// RunOptions maps the archive settings.
func (c *Config) RunOptions() pdtgen.RunOptions {
	return pdtgen.RunOptions{ArchiveDir: c.Archive.Dir}
}

// ExpandOptions maps the template and side-workbook settings. Paths and the
// design selection come from the command line.
func (c *Config) ExpandOptions() pdtgen.ExpandOptions {
	return pdtgen.ExpandOptions{
		TemplateSheet:  c.Sheets.Template,
		ECRFSheet:      c.Sheets.ECRF,
		AEDISTemplates: c.AEDISTemplates,
		CodeListSheet:  c.CodeList.Sheet,
		CodeListQuery:  c.CodeList.Query,
	}
}

// GenerateOptions returns the options of the toc command.
func (c *Config) GenerateOptions() pdtgen.GenerateOptions {
	return pdtgen.GenerateOptions{
		RunOptions:    c.RunOptions(),
		ExpandOptions: c.ExpandOptions(),
		TOCSheet:      c.Sheets.TOC,
	}
}

// MergeOptions returns the options of the pdt command.
func (c *Config) MergeOptions() pdtgen.MergeOptions {
	return pdtgen.MergeOptions{
		RunOptions:    c.RunOptions(),
		ExpandOptions: c.ExpandOptions(),
		TOCSheet:      c.Sheets.TOC,
		Sheet:         c.Sheets.Deliverables,
		ListSheet:     c.Sheets.ListValues,
		Validations:   c.Validations,
		Defaults:      c.Defaults,
	}
}

// FillOptions returns the options of the fill command.
func (c *Config) FillOptions() pdtgen.FillOptions {
	return pdtgen.FillOptions{
		RunOptions: c.RunOptions(),
		Sheet:      c.Sheets.Deliverables,
		Language:   models.Language(c.Language),
	}
}
