package pdtgen

import (
	"github.com/google/uuid"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/parser"
	"go.uber.org/zap"
)

// MergeDeliverables expands the template rows of templatePath and replaces the Output
// rows of the PDT at pdtPath with them.
func MergeDeliverables(templatePath, pdtPath string, opts MergeOptions) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := opts.logger().With(zap.String("run_id", res.RunID), zap.String("op", "pdt"))

	rows, err := expandTemplate(templatePath, opts.ExpandOptions, log)
	if err == nil {
		err = mergeRows(pdtPath, rows, opts, log, res)
	}
	if err != nil {
		logFailure(log, "pdt merge failed", err)
		return nil, err
	}
	return res, nil
}

// MergeFromTOC replaces the Output rows of the PDT at pdtPath with the rows of a
// generated TOC workbook.
func MergeFromTOC(tocPath, pdtPath string, opts MergeOptions) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := opts.logger().With(zap.String("run_id", res.RunID), zap.String("op", "pdt"))

	rows, err := readTOCRows(tocPath, opts.TOCSheet)
	if err == nil {
		log.Debug("toc read", zap.String("toc", tocPath), zap.Int("rows", len(rows)))
		err = mergeRows(pdtPath, rows, opts, log, res)
	}
	if err != nil {
		logFailure(log, "pdt merge failed", err)
		return nil, err
	}
	return res, nil
}

func readTOCRows(tocPath, sheet string) ([]models.ExpandedRow, error) {
	f, err := openWorkbook(tocPath)
	if err != nil {
		return nil, NewStageError(StageReadingTemplate, tocPath, err)
	}
	defer f.Close()
	rows, err := parser.ReadTOC(f, orDefault(sheet, parser.DefaultTOCSheet))
	if err != nil {
		return nil, NewStageError(StageReadingTemplate, tocPath, err)
	}
	return rows, nil
}

func mergeRows(pdtPath string, rows []models.ExpandedRow, opts MergeOptions, log *zap.Logger, res *Result) error {
	log.Debug("stage", zap.String("stage", string(StageReadingDeliverables)), zap.String("pdt", pdtPath))
	f, err := openWorkbook(pdtPath)
	if err != nil {
		return NewStageError(StageReadingDeliverables, pdtPath, err)
	}
	defer f.Close()

	d, err := parser.OpenDeliverables(f, orDefault(opts.Sheet, parser.DefaultDeliverablesSheet))
	if err != nil {
		return NewStageError(StageReadingDeliverables, pdtPath, err)
	}

	log.Debug("stage", zap.String("stage", string(StageMerging)))
	style, err := d.CaptureRowStyle()
	if err != nil {
		return NewStageError(StageMerging, pdtPath, err)
	}
	removed, err := d.DeleteOutputRows()
	if err != nil {
		return NewStageError(StageMerging, pdtPath, err)
	}
	first, last, err := d.Append(deliverableRecords(rows, opts.Defaults), style)
	if err != nil {
		return NewStageError(StageMerging, pdtPath, err)
	}
	listSheet := orDefault(opts.ListSheet, DefaultListSheet)
	if err := d.AddListValidations(listSheet, opts.Validations, first, last); err != nil {
		return NewStageError(StageMerging, pdtPath, err)
	}
	if err := parser.ForceRecalculation(f); err != nil {
		return NewStageError(StageMerging, pdtPath, err)
	}

	if err := save(f, pdtPath, opts.RunOptions, log, res); err != nil {
		return err
	}
	res.Rows = len(rows)
	res.Removed = removed
	log.Info("pdt merged", zap.String("stage", string(StageDone)), zap.String("pdt", pdtPath),
		zap.Int("rows", res.Rows), zap.Int("removed", removed), zap.Int("first_row", first))
	return nil
}

// deliverableRecords maps expanded rows to deliverables columns. Empty defaults leave
// their column blank.
func deliverableRecords(rows []models.ExpandedRow, def RowDefaults) []parser.Record {
	out := make([]parser.Record, len(rows))
	for i, r := range rows {
		rec := parser.Record{
			parser.ColCategory:        models.CategoryOutput,
			parser.ColOutputType:      string(r.OutputType),
			parser.ColTitle:           r.Title,
			parser.ColPopulation:      r.Population,
			parser.ColFootnotes:       r.Footnote,
			parser.ColOutputReference: r.OutputReference,
		}
		for col, v := range map[string]string{
			parser.ColValidationLevel: def.ValidationLevel,
			parser.ColDevelopers:      def.Developer,
			parser.ColValidators:      def.Validator,
			parser.ColOutputStatus:    def.OutputStatus,
			parser.ColValidatedBy:     def.ValidatedBy,
		} {
			if v != "" {
				rec[col] = v
			}
		}
		out[i] = rec
	}
	return out
}
