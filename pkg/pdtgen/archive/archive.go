// Package archive keeps timestamped copies of workbooks before they are overwritten and
// replaces files atomically.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultDirName is the archive directory created next to the archived file.
const DefaultDirName = "99_archive"

// TimeLayout formats the archive timestamp suffix.
const TimeLayout = "20060102150405"

// maxCollisions bounds the _1, _2, ... suffixes tried for one timestamp.
const maxCollisions = 1000

// Backup copies path into <dir of path>/<dirName>/<stem>_<timestamp><ext>, keeping its
// mode and modification time. An existing archive is never overwritten: a numeric suffix
// is added instead. It returns the archive path, or "" when path does not exist.
func Backup(path, dirName string, now time.Time) (string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		return "", errors.Errorf("%s is a directory", path)
	}

	if dirName == "" {
		dirName = DefaultDirName
	}
	dir := filepath.Join(filepath.Dir(path), dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create archive dir %s", dir)
	}

	src, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", path)
	}
	defer src.Close()

	dst, target, err := createUnique(dir, filepath.Base(path), now)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(target)
		return "", errors.Wrapf(err, "copy %s", path)
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return "", errors.Wrapf(err, "close %s", target)
	}
	if err := os.Chmod(target, info.Mode().Perm()); err != nil {
		return target, errors.Wrapf(err, "chmod %s", target)
	}
	if err := os.Chtimes(target, info.ModTime(), info.ModTime()); err != nil {
		return target, errors.Wrapf(err, "set times on %s", target)
	}
	return target, nil
}

// createUnique creates the archive file exclusively, adding _1, _2, ... on collision.
func createUnique(dir, base string, now time.Time) (*os.File, string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := stem + "_" + now.Format(TimeLayout)
	for i := 0; i < maxCollisions; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d", name, i)
		}
		target := filepath.Join(dir, candidate+ext)
		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, target, nil
		}
		if !os.IsExist(err) {
			return nil, "", errors.Wrapf(err, "create %s", target)
		}
	}
	return nil, "", errors.Errorf("no free archive name for %s in %s", base, dir)
}

// Replace writes path through a temporary file in the same directory and renames it into
// place, so readers see either the old or the new content. The temporary file is removed
// when write fails. An existing file keeps its permissions.
func Replace(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create dir %s", dir)
	}
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = write(tmp); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrapf(err, "sync %s", tmpName)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmpName)
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return errors.Wrapf(err, "chmod %s", tmpName)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "rename %s", tmpName)
	}
	return nil
}
