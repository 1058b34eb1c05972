package pdtgen

import (
	"errors"
	"fmt"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/parser"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/toc"
	"go.uber.org/zap"
)

// ErrFileNotFound indicates an input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates an input file is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrEmptyTemplate indicates the template sheet has a header but no data rows.
var ErrEmptyTemplate = errors.New("template has no data rows")

// Errors returned by the workbook and selection layers.
var (
	ErrSheetNotFound    = parser.ErrSheetNotFound
	ErrHeaderNotFound   = parser.ErrHeaderNotFound
	ErrInvalidSelection = toc.ErrInvalidSelection
)

// Stage is a step of a generation, merge or fill run.
type Stage string

const (
	StageReadingTemplate     Stage = "reading_template"
	StageFiltering           Stage = "filtering"
	StageExpanding           Stage = "expanding"
	StageBuildingReferences  Stage = "building_references"
	StageReadingDeliverables Stage = "reading_deliverables"
	StageReadingShells       Stage = "reading_shells"
	StageMerging             Stage = "merging"
	StageMatching            Stage = "matching"
	StageArchiving           Stage = "archiving"
	StageWriting             Stage = "writing"
	StageDone                Stage = "done"
	StageFailed              Stage = "failed"
)

// StageError represents a failure of one stage of a run.
type StageError struct {
	Path  string
	Sheet string
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
	if e.Sheet != "" {
		return fmt.Sprintf("%s failed for %s (sheet %q): %v", e.Stage, e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("%s failed for %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// logFailure records the end of a failed run. The stage field is always StageFailed;
// failed_stage names the step that broke when err carries one.
func logFailure(log *zap.Logger, msg string, err error) {
	fields := []zap.Field{zap.String("stage", string(StageFailed)), zap.Error(err)}
	var se *StageError
	if errors.As(err, &se) {
		fields = append(fields, zap.String("failed_stage", string(se.Stage)))
	}
	log.Error(msg, fields...)
}

// NewStageError creates a StageError, taking the sheet name from err when it carries one.
func NewStageError(stage Stage, path string, err error) *StageError {
	se := &StageError{Path: path, Stage: stage, Err: err}
	var sheetErr *parser.SheetError
	if errors.As(err, &sheetErr) {
		se.Sheet = sheetErr.Sheet
	}
	return se
}
