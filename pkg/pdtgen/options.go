// Package pdtgen generates TOC workbooks from a TOC template, merges the expanded
// deliverables into a project PDT and fills program names from a program-name workbook.
package pdtgen

import (
	"time"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/archive"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/parser"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/toc"
	"go.uber.org/zap"
)

// DefaultListSheet is the PDT sheet holding drop-down list values.
const DefaultListSheet = "List Values"

// DefaultAEDISTemplates are dropped when the eCRF metadata has no AE.AEDIS variable.
var DefaultAEDISTemplates = []string{"14.3.1-5.1", "14.3.1-5.2"}

// DefaultAEACNQuery selects the adverse-event action labels of a code list.
func DefaultAEACNQuery() parser.CodeListQuery {
	return parser.CodeListQuery{Name: "AEACN", Exclude: append([]string(nil), toc.DefaultExcludedAELabels...)}
}

// DefaultValidations are the drop-down lists attached to appended deliverables rows.
func DefaultValidations() []parser.ListValidation {
	return []parser.ListValidation{
		{Column: parser.ColDevelopers, Source: "$A$2:$A$200"},
		{Column: parser.ColValidators, Source: "$A$2:$A$200"},
		{Column: parser.ColValidationLevel, Source: "$E$2:$E$4"},
		{Column: parser.ColOutputStatus, Source: "$F$2:$F$3"},
		{Column: parser.ColValidatedBy, Source: "$G$2:$G$4"},
	}
}

// RunOptions are shared by every entry point.
type RunOptions struct {
	// Logger receives stage transitions. Nil disables logging.
	Logger *zap.Logger
	// Now stamps archive copies. Nil uses time.Now.
	Now func() time.Time
	// ArchiveDir is the backup directory name next to the overwritten file. An existing
	// destination is always copied there before it is replaced.
	ArchiveDir string
}

func (o RunOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o RunOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o RunOptions) archiveDir() string {
	if o.ArchiveDir == "" {
		return archive.DefaultDirName
	}
	return o.ArchiveDir
}

// ExpandOptions configure how template rows are read and expanded.
type ExpandOptions struct {
	// TemplateSheet defaults to parser.DefaultTemplateSheet.
	TemplateSheet string
	// Selection drives filtering and expansion. An empty language is read from SetupPath.
	Selection toc.Selection
	// SetupPath is an optional setup workbook carrying the LNG macro variable.
	SetupPath string
	// ECRFPath is an optional eCRF metadata workbook gating AEDISTemplates.
	ECRFPath  string
	ECRFSheet string
	// AEDISTemplates are dropped when ECRFPath has no AE.AEDIS variable.
	AEDISTemplates []string
	// CodeListPath is an optional code-list workbook supplying Selection.AECategories
	// when the selection has none.
	CodeListPath  string
	CodeListSheet string
	CodeListQuery parser.CodeListQuery
}

func (o ExpandOptions) templateSheet() string {
	if o.TemplateSheet == "" {
		return parser.DefaultTemplateSheet
	}
	return o.TemplateSheet
}

func (o ExpandOptions) aedisTemplates() []string {
	if o.AEDISTemplates == nil {
		return DefaultAEDISTemplates
	}
	return o.AEDISTemplates
}

func (o ExpandOptions) codeListQuery() parser.CodeListQuery {
	if o.CodeListQuery.Name == "" {
		return DefaultAEACNQuery()
	}
	return o.CodeListQuery
}

// GenerateOptions configures GenerateTOC.
type GenerateOptions struct {
	RunOptions
	ExpandOptions
	// TOCSheet defaults to parser.DefaultTOCSheet.
	TOCSheet string
}

// DefaultGenerateOptions returns default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{TOCSheet: parser.DefaultTOCSheet}
}

// RowDefaults are written into every appended deliverables row.
type RowDefaults struct {
	ValidationLevel string `yaml:"validation_level"`
	Developer       string `yaml:"developer"`
	Validator       string `yaml:"validator"`
	OutputStatus    string `yaml:"output_status"`
	ValidatedBy     string `yaml:"validated_by"`
}

// DefaultRowDefaults returns the review defaults of new deliverables rows.
func DefaultRowDefaults() RowDefaults {
	return RowDefaults{ValidationLevel: "Non-critical", ValidatedBy: "Not Started"}
}

// MergeOptions configures MergeDeliverables and MergeFromTOC.
type MergeOptions struct {
	RunOptions
	ExpandOptions
	// TOCSheet is the sheet MergeFromTOC reads.
	TOCSheet string
	// Sheet is the deliverables sheet of the PDT.
	Sheet string
	// ListSheet holds the values referenced by Validations.
	ListSheet   string
	Validations []parser.ListValidation
	Defaults    RowDefaults
}

// DefaultMergeOptions returns default merge options.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		TOCSheet:    parser.DefaultTOCSheet,
		Sheet:       parser.DefaultDeliverablesSheet,
		ListSheet:   DefaultListSheet,
		Validations: DefaultValidations(),
		Defaults:    DefaultRowDefaults(),
	}
}

// FillOptions configures FillProgramNames.
type FillOptions struct {
	RunOptions
	// Sheet is the deliverables sheet of the PDT.
	Sheet string
	// Language selects the shell title columns. Empty reads SetupPath, then Chinese.
	Language  models.Language
	SetupPath string
}

// DefaultFillOptions returns default fill options.
func DefaultFillOptions() FillOptions {
	return FillOptions{Sheet: parser.DefaultDeliverablesSheet}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
