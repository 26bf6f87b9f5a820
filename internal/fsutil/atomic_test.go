package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		_, err := fmt.Fprint(w, "first")
		return err
	}))
	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		_, err := fmt.Fprint(w, "second")
		return err
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	errBoom := errors.New("boom")

	err := WriteFile(path, func(w io.Writer) error {
		fmt.Fprint(w, "partial")
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial or temp file")
}
