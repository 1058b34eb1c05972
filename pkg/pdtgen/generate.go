package pdtgen

import (
	"github.com/google/uuid"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/parser"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/toc"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// GenerateTOC expands the template rows of templatePath for the selection and writes the
// result to a TOC workbook at outputPath. An existing outputPath is archived first.
func GenerateTOC(templatePath, outputPath string, opts GenerateOptions) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := opts.logger().With(zap.String("run_id", res.RunID), zap.String("op", "toc"))

	if err := generateTOC(templatePath, outputPath, opts, log, res); err != nil {
		logFailure(log, "toc generation failed", err)
		return nil, err
	}
	log.Info("toc generated", zap.String("stage", string(StageDone)),
		zap.String("output", outputPath), zap.Int("rows", res.Rows))
	return res, nil
}

func generateTOC(templatePath, outputPath string, opts GenerateOptions, log *zap.Logger, res *Result) error {
	rows, err := expandTemplate(templatePath, opts.ExpandOptions, log)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := orDefault(opts.TOCSheet, parser.DefaultTOCSheet)
	if err := parser.WriteTOC(f, sheet, rows); err != nil {
		return NewStageError(StageWriting, outputPath, err)
	}
	if err := save(f, outputPath, opts.RunOptions, log, res); err != nil {
		return err
	}
	res.Rows = len(rows)
	return nil
}

// ExpandTemplate reads and expands the template rows of templatePath without writing.
func ExpandTemplate(templatePath string, opts ExpandOptions) ([]models.ExpandedRow, error) {
	return expandTemplate(templatePath, opts, zap.NewNop())
}

func expandTemplate(templatePath string, o ExpandOptions, log *zap.Logger) ([]models.ExpandedRow, error) {
	log.Debug("stage", zap.String("stage", string(StageReadingTemplate)), zap.String("template", templatePath))
	sel, err := resolveSelection(o, log)
	if err != nil {
		return nil, err
	}

	f, err := openWorkbook(templatePath)
	if err != nil {
		return nil, NewStageError(StageReadingTemplate, templatePath, err)
	}
	defer f.Close()

	rows, err := parser.ReadTemplate(f, o.templateSheet())
	if err != nil {
		return nil, NewStageError(StageReadingTemplate, templatePath, err)
	}
	if len(rows) == 0 {
		return nil, &StageError{Path: templatePath, Sheet: o.templateSheet(), Stage: StageReadingTemplate, Err: ErrEmptyTemplate}
	}
	log.Debug("template read", zap.Int("rows", len(rows)))

	if o.ECRFPath != "" {
		keep, err := ecrfHasAEDIS(o)
		if err != nil {
			return nil, NewStageError(StageReadingTemplate, o.ECRFPath, err)
		}
		if !keep {
			before := len(rows)
			rows = toc.WithoutTemplates(rows, o.aedisTemplates()...)
			log.Info("AEDIS not collected, templates dropped", zap.Int("dropped", before-len(rows)))
		}
	}

	log.Debug("stage", zap.String("stage", string(StageFiltering)))
	units := toc.NewFilter(sel).Units(rows)
	log.Debug("stage", zap.String("stage", string(StageExpanding)), zap.Int("units", len(units)))
	out := toc.ExpandUnits(units, sel)
	log.Debug("stage", zap.String("stage", string(StageBuildingReferences)), zap.Int("rows", len(out)))
	return out, nil
}

// resolveSelection fills the language and AE categories from the optional side
// workbooks and validates the result.
func resolveSelection(o ExpandOptions, log *zap.Logger) (toc.Selection, error) {
	sel := o.Selection
	if sel.Language == "" && o.SetupPath != "" {
		f, err := openWorkbook(o.SetupPath)
		if err != nil {
			return sel, NewStageError(StageReadingTemplate, o.SetupPath, err)
		}
		lang, err := parser.ReadLanguage(f)
		f.Close()
		if err != nil {
			return sel, NewStageError(StageReadingTemplate, o.SetupPath, err)
		}
		sel.Language = lang
		log.Debug("language from setup", zap.String("language", string(lang)))
	}

	if sel.AECategories == nil && o.CodeListPath != "" {
		f, err := openWorkbook(o.CodeListPath)
		if err != nil {
			return sel, NewStageError(StageReadingTemplate, o.CodeListPath, err)
		}
		labels, err := parser.ReadCodeLabels(f, o.CodeListSheet, o.codeListQuery())
		f.Close()
		if err != nil {
			return sel, NewStageError(StageReadingTemplate, o.CodeListPath, err)
		}
		sel.AECategories = labels
		log.Debug("AE categories from code list", zap.Strings("labels", labels))
	}

	sel, err := sel.Normalize()
	if err != nil {
		return sel, &StageError{Stage: StageFiltering, Err: err}
	}
	return sel, nil
}

func ecrfHasAEDIS(o ExpandOptions) (bool, error) {
	f, err := openWorkbook(o.ECRFPath)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return parser.ECRFHasVariable(f, o.ECRFSheet, "AE", "AEDIS")
}
