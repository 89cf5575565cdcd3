package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/spend-insights/internal/fileutils"
	"fjacquet/spend-insights/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "operations.csv")
	err := os.WriteFile(testFile, []byte("test"), 0600)
	assert.NoError(t, err)

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.csv")))

	// Directories are not files
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestIsEmptyFile(t *testing.T) {
	tmpDir := t.TempDir()

	empty := filepath.Join(tmpDir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	full := filepath.Join(tmpDir, "full.csv")
	require.NoError(t, os.WriteFile(full, []byte("date"), 0600))

	assert.True(t, fileutils.IsEmptyFile(empty))
	assert.False(t, fileutils.IsEmptyFile(full))
	assert.False(t, fileutils.IsEmptyFile(filepath.Join(tmpDir, "missing.csv")))
	assert.False(t, fileutils.IsEmptyFile(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.txt")
	err := os.WriteFile(testFile, []byte("test"), 0600)
	assert.NoError(t, err)
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "data", "reports")
	err := fileutils.EnsureDirectoryExists(newDir)
	assert.NoError(t, err)
	assert.True(t, fileutils.DirectoryExists(newDir))

	err = fileutils.EnsureDirectoryExists(tmpDir)
	assert.NoError(t, err)
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "user_settings.json")
	content := []byte(`{"user_currencies":["USD"]}`)
	require.NoError(t, os.WriteFile(testFile, content, 0600))

	data, err := fileutils.ReadFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, content, data)

	missing := filepath.Join(tmpDir, "nonexistent.json")
	_, err = fileutils.ReadFile(missing)
	require.Error(t, err)
	var notFound *parsererror.FileNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing, notFound.Path)
	assert.Contains(t, err.Error(), "file not found")
}

func TestWriteFile(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "report.csv")
	content := []byte("date,amount\n")
	err := fileutils.WriteFile(testFile, content, 0600)
	assert.NoError(t, err)

	data, err := os.ReadFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, content, data)

	nestedFile := filepath.Join(tmpDir, "a", "b", "c", "report.csv")
	err = fileutils.WriteFile(nestedFile, content, 0600)
	assert.NoError(t, err)
	assert.True(t, fileutils.FileExists(nestedFile))
}

func TestOpenFile(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	file, err := fileutils.OpenFile(testFile)
	assert.NoError(t, err)
	assert.NotNil(t, file)
	_ = file.Close()

	_, err = fileutils.OpenFile(filepath.Join(tmpDir, "nonexistent.txt"))
	var notFound *parsererror.FileNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestListFiles(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"report_b.csv", "report_a.CSV", "report.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "nested.csv"), 0750))

	files, err := fileutils.ListFiles(tmpDir, ".csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"report_a.CSV", "report_b.csv"}, files)

	files, err = fileutils.ListFiles(tmpDir, ".csv", ".json")
	require.NoError(t, err)
	assert.Len(t, files, 3)

	files, err = fileutils.ListFiles(tmpDir)
	require.NoError(t, err)
	assert.Len(t, files, 4)

	files, err = fileutils.ListFiles(tmpDir, ".xml")
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = fileutils.ListFiles(filepath.Join(tmpDir, "nonexistent"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "directory does not exist")
}
