package pdtgen

import (
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/archive"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// openWorkbook opens an existing xlsx file.
func openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return f, nil
}

// save archives the current content of path, then replaces it atomically with f.
func save(f *excelize.File, path string, o RunOptions, log *zap.Logger, res *Result) error {
	log.Debug("stage", zap.String("stage", string(StageArchiving)))
	backup, err := archive.Backup(path, o.archiveDir(), o.now())
	if err != nil {
		return NewStageError(StageArchiving, path, err)
	}
	if backup != "" {
		log.Info("archived previous file", zap.String("backup", backup))
	}
	res.Backup = backup

	log.Debug("stage", zap.String("stage", string(StageWriting)))
	err = archive.Replace(path, func(w io.Writer) error {
		return f.Write(w)
	})
	if err != nil {
		return NewStageError(StageWriting, path, err)
	}
	res.Output = path
	return nil
}
