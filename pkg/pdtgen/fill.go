package pdtgen

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/matcher"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/parser"
	"go.uber.org/zap"
)

// LoadMatcher builds a matcher from a program-name workbook.
func LoadMatcher(shellsPath string, lang models.Language) (*matcher.Matcher, error) {
	f, err := openWorkbook(shellsPath)
	if err != nil {
		return nil, NewStageError(StageReadingShells, shellsPath, err)
	}
	defer f.Close()

	shells, err := parser.LoadShells(f, lang)
	if err != nil {
		return nil, NewStageError(StageReadingShells, shellsPath, err)
	}
	return matcher.New(shells), nil
}

// FillProgramNames matches every Output row of the PDT at pdtPath against the shells of
// shellsPath and writes the Program Name and SYSPARM Value of the matched rows. Rows
// without a match keep their current values.
func FillProgramNames(pdtPath, shellsPath string, opts FillOptions) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := opts.logger().With(zap.String("run_id", res.RunID), zap.String("op", "fill"))

	if err := fillProgramNames(pdtPath, shellsPath, opts, log, res); err != nil {
		logFailure(log, "program fill failed", err)
		return nil, err
	}
	log.Info("program names filled", zap.String("stage", string(StageDone)),
		zap.Int("filled", res.Rows), zap.Int("unmatched", res.Unmatched))
	return res, nil
}

func fillProgramNames(pdtPath, shellsPath string, opts FillOptions, log *zap.Logger, res *Result) error {
	lang, err := fillLanguage(opts)
	if err != nil {
		return err
	}
	log.Debug("stage", zap.String("stage", string(StageReadingShells)),
		zap.String("shells", shellsPath), zap.String("language", string(lang)))
	m, err := LoadMatcher(shellsPath, lang)
	if err != nil {
		return err
	}

	log.Debug("stage", zap.String("stage", string(StageReadingDeliverables)), zap.String("pdt", pdtPath))
	f, err := openWorkbook(pdtPath)
	if err != nil {
		return NewStageError(StageReadingDeliverables, pdtPath, err)
	}
	defer f.Close()

	sheet := orDefault(opts.Sheet, parser.DefaultDeliverablesSheet)
	d, err := parser.OpenDeliverables(f, sheet)
	if err != nil {
		return NewStageError(StageReadingDeliverables, pdtPath, err)
	}
	for _, col := range []string{parser.ColOutputReference, parser.ColTitle, parser.ColProgramName, parser.ColSysparmValue} {
		if !d.Header.Has(col) {
			err := errors.Wrapf(ErrHeaderNotFound, "column %q", col)
			return &StageError{Path: pdtPath, Sheet: sheet, Stage: StageReadingDeliverables, Err: err}
		}
	}
	rows, err := d.OutputRows()
	if err != nil {
		return NewStageError(StageReadingDeliverables, pdtPath, err)
	}

	log.Debug("stage", zap.String("stage", string(StageMatching)), zap.Int("rows", len(rows)))
	for _, r := range rows {
		title := r.Get(parser.ColTitle)
		mr := m.Match(matcher.Deliverable{
			OutputReference: r.Get(parser.ColOutputReference),
			Title:           title,
			OutputType:      models.ParseOutputType(r.Get(parser.ColOutputType)),
			Population:      r.Get(parser.ColPopulation),
		})
		if mr.Unhandled != "" {
			log.Warn("unhandled title pattern", zap.Int("row", r.R), zap.String("title", title), zap.String("reason", mr.Unhandled))
			res.Unhandled = append(res.Unhandled, title+": "+mr.Unhandled)
		}
		if mr.Empty() {
			res.Unmatched++
			log.Debug("no program match", zap.Int("row", r.R), zap.String("section", mr.Section))
			continue
		}
		if err := d.SetValue(r.R, parser.ColProgramName, mr.ProgramName); err != nil {
			return NewStageError(StageMatching, pdtPath, err)
		}
		if err := d.SetValue(r.R, parser.ColSysparmValue, mr.Params); err != nil {
			return NewStageError(StageMatching, pdtPath, err)
		}
		res.Rows++
	}

	return save(f, pdtPath, opts.RunOptions, log, res)
}

func fillLanguage(opts FillOptions) (models.Language, error) {
	if opts.Language != "" {
		return opts.Language, nil
	}
	if opts.SetupPath == "" {
		return models.LangCN, nil
	}
	f, err := openWorkbook(opts.SetupPath)
	if err != nil {
		return "", NewStageError(StageReadingShells, opts.SetupPath, err)
	}
	defer f.Close()
	lang, err := parser.ReadLanguage(f)
	if err != nil {
		return "", NewStageError(StageReadingShells, opts.SetupPath, err)
	}
	return lang, nil
}
