package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
)

func resetExtractFlags() {
	extractTitle = ""
	extractOut = "."
	extractPage = 0
	extractCategory = "Programming_Tasks"
}

func TestExtractCmd_Use(t *testing.T) {
	assert.Equal(t, "extract [file]", extractCmd.Use)
}

func TestExtractCmd_File(t *testing.T) {
	defer resetExtractFlags()
	svc := &mockMirrorService{extracted: []string{"out/Hello/go/hello.go"}}
	cleanup := setupMirrorTest(svc)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "Hello.wiki")
	require.NoError(t, os.WriteFile(path, []byte("=={{header|Go}}=="), 0o644))

	out, err := execute(t, "extract", path, "--out", "out")

	require.NoError(t, err)
	assert.Equal(t, []string{"out", "Hello", "=={{header|Go}}=="}, svc.extractArgs)
	assert.Contains(t, out, "out/Hello/go/hello.go")
	assert.Contains(t, out, "Wrote 1 file(s).")
}

func TestExtractCmd_FileWithTitle(t *testing.T) {
	defer resetExtractFlags()
	svc := &mockMirrorService{}
	cleanup := setupMirrorTest(svc)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "page.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := execute(t, "extract", path, "--title", "99 Bottles of Beer")

	require.NoError(t, err)
	assert.Equal(t, "99 Bottles of Beer", svc.extractArgs[1])
	assert.Equal(t, ".", svc.extractArgs[0])
}

func TestExtractCmd_Page(t *testing.T) {
	defer resetExtractFlags()
	svc := &mockMirrorService{extracted: []string{"a", "b"}}
	cleanup := setupMirrorTest(svc)
	defer cleanup()

	out, err := execute(t, "extract", "--page", "42", "--category", "Simple")

	require.NoError(t, err)
	assert.Equal(t, []string{"Simple"}, svc.extractArgs)
	assert.Contains(t, out, "Wrote 2 file(s).")
}

func TestExtractCmd_NeedsExactlyOneSource(t *testing.T) {
	defer resetExtractFlags()
	cleanup := setupMirrorTest(&mockMirrorService{})
	defer cleanup()

	_, err := execute(t, "extract")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either a file or --page")

	_, err = execute(t, "extract", "file.wiki", "--page", "1")
	require.Error(t, err)
}

func TestExtractCmd_MissingFile(t *testing.T) {
	defer resetExtractFlags()
	cleanup := setupMirrorTest(&mockMirrorService{})
	defer cleanup()

	_, err := execute(t, "extract", filepath.Join(t.TempDir(), "missing.wiki"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtractCmd_MalformedPage(t *testing.T) {
	defer resetExtractFlags()
	cleanup := setupMirrorTest(&mockMirrorService{extractErr: domain.ErrMalformedFormat})
	defer cleanup()

	path := filepath.Join(t.TempDir(), "page.wiki")
	require.NoError(t, os.WriteFile(path, []byte("<lang go>"), 0o644))

	_, err := execute(t, "extract", path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedFormat)
}
