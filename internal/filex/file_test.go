package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSubDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()

	got, err := EnsureSubDir(tmp, "reports")
	require.NoError(t, err)

	want := filepath.Join(tmp, "reports")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")
}

func TestEnsureSubDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()

	first, err := EnsureSubDir(tmp, "reports")
	require.NoError(t, err)

	second, err := EnsureSubDir(tmp, "reports")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEnsureSubDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "reports"), []byte("x"), 0o600))

	_, err := EnsureSubDir(tmp, "reports")
	require.Error(t, err)
}

func TestWriteFileAtomic_WritesAndReplaces(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "report.xlsx")

	require.NoError(t, WriteFileAtomic(path, []byte("v1"), 0o600))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, WriteFileAtomic(path, []byte("v2"), 0o600))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	// no stray temp files left behind
	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
