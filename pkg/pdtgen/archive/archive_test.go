package archive

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "TOC.xlsx")
	content := []byte("original workbook bytes")
	require.NoError(t, os.WriteFile(path, content, 0o640))
	mtime := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	target, err := Backup(path, "", stamp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultDirName, "TOC_20260314092653.xlsx"), target)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(mtime))

	again, err := Backup(path, "", stamp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultDirName, "TOC_20260314092653_1.xlsx"), again)

	entries, err := os.ReadDir(filepath.Join(dir, DefaultDirName))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBackupMissingFile(t *testing.T) {
	dir := t.TempDir()

	target, err := Backup(filepath.Join(dir, "absent.xlsx"), "old", stamp)
	require.NoError(t, err)
	assert.Empty(t, target)

	_, err = os.Stat(filepath.Join(dir, "old"))
	assert.True(t, os.IsNotExist(err))
}

func TestReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PDT.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	err := Replace(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestReplaceFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PDT.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	boom := errors.New("boom")
	err := Replace(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file cleaned up")
}
