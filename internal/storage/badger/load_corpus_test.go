package badger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/models"
)

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadCorpusFromFiles_TOMLAndYAML(t *testing.T) {
	store := newTestManager(t).ChunkStorage()
	dir := t.TempDir()

	writeCorpusFile(t, dir, "deductions.toml", `
[[chunks]]
text = "standard deduction amounts"
source_path = "pub501/std.md"
category = "deductions"

[[chunks]]
text = "itemized deduction rules"
category = "deductions"
`)
	writeCorpusFile(t, dir, "credits.yaml", `
chunks:
  - text: "eitc eligibility"
    source_path: "pub596/eitc.md"
    category: "credits"
`)
	// Ignored: wrong extension
	writeCorpusFile(t, dir, "notes.txt", "not a corpus file")

	loaded, err := LoadCorpusFromFiles(store, dir, common.GetLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, loaded)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Missing source path inherits the file name
	chunks, err := store.Query("deductions", 10)
	require.NoError(t, err)
	paths := make(map[string]bool)
	for _, chunk := range chunks {
		paths[chunk.SourcePath] = true
	}
	assert.True(t, paths["deductions.toml"])
	assert.True(t, paths["pub501/std.md"])
}

func TestLoadCorpusFromFiles_SkipsBadFilesAndEmptyChunks(t *testing.T) {
	store := newTestManager(t).ChunkStorage()
	dir := t.TempDir()

	writeCorpusFile(t, dir, "broken.toml", "[[chunks\nnot toml")
	writeCorpusFile(t, dir, "mixed.toml", `
[[chunks]]
text = ""
category = "filing"

[[chunks]]
text = "valid chunk"
`)

	loaded, err := LoadCorpusFromFiles(store, dir, common.GetLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)

	// Missing category defaults to general
	chunks, err := store.Query(models.CategoryAll, 10)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "general", chunks[0].Category)
}

func TestLoadCorpusFromFiles_MissingDirectoryIsNoOp(t *testing.T) {
	store := newTestManager(t).ChunkStorage()

	loaded, err := LoadCorpusFromFiles(store, "/no/such/dir", common.GetLogger())
	require.NoError(t, err)
	assert.Zero(t, loaded)
}
