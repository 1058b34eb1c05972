package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/parser"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, parser.DefaultTemplateSheet, cfg.Sheets.Template)
	assert.Equal(t, parser.DefaultDeliverablesSheet, cfg.Sheets.Deliverables)
	assert.Equal(t, "99_archive", cfg.Archive.Dir)
	assert.Equal(t, "Non-critical", cfg.Defaults.ValidationLevel)
	assert.Empty(t, cfg.Defaults.Developer)
	assert.Len(t, cfg.Validations, 5)
	assert.Equal(t, "AEACN", cfg.CodeList.Query.Name)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel())
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pdtgen.yaml")

	cfg := DefaultConfig()
	cfg.Language = "en"
	cfg.Defaults.Developer = "dev1"
	cfg.Archive.Dir = "old_versions"
	cfg.AEDISTemplates = []string{"14.3.1-9"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdtgen.yaml")
	content := `
sheets:
  deliverables: Outputs
defaults:
  validator: qc1
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Outputs", cfg.Sheets.Deliverables)
	assert.Equal(t, parser.DefaultTemplateSheet, cfg.Sheets.Template)
	assert.Equal(t, "qc1", cfg.Defaults.Validator)
	assert.Equal(t, "Not Started", cfg.Defaults.ValidatedBy)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "sheets: [unclosed"},
		{"unknown language", "language: jp"},
		{"bad level", "logging:\n  level: loud"},
		{"validation without source", "validations:\n  - column: Developers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pdtgen.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Language = "en"
	cfg.Sheets.ECRF = "Variables"
	cfg.Archive.Dir = "old"

	merge := cfg.MergeOptions()
	assert.Equal(t, "old", merge.ArchiveDir)
	assert.Equal(t, cfg.Sheets.ListValues, merge.ListSheet)
	assert.Equal(t, "Variables", merge.ECRFSheet)
	assert.Equal(t, pdtgen.DefaultValidations(), merge.Validations)

	fill := cfg.FillOptions()
	assert.Equal(t, models.LangEN, fill.Language)
	assert.Equal(t, parser.DefaultDeliverablesSheet, fill.Sheet)

	gen := cfg.GenerateOptions()
	assert.Equal(t, parser.DefaultTOCSheet, gen.TOCSheet)
	assert.Equal(t, parser.DefaultTemplateSheet, gen.TemplateSheet)
}
