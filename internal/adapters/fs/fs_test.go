package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "git config")
	writeFile(t, filepath.Join(tmpDir, "node_modules", "x", "index.js"), "x")
	writeFile(t, filepath.Join(tmpDir, "ignored", "file"), "ignored")
	writeFile(t, filepath.Join(tmpDir, "src", "main.scss"), "a{}")
	writeFile(t, filepath.Join(tmpDir, "README.md"), "# readme")

	walker := fs.NewWalker()
	var got []string
	for p, walkErr := range walker.WalkFiles(tmpDir, []string{"ignored"}) {
		require.NoError(t, walkErr)
		rel, err := filepath.Rel(tmpDir, p)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}
	slices.Sort(got)

	assert.Equal(t, []string{"README.md", "src/main.scss"}, got)
}

func TestWalker_MissingRoot(t *testing.T) {
	walker := fs.NewWalker()
	count := 0
	for range walker.WalkFiles(filepath.Join(t.TempDir(), "absent"), nil) {
		count++
	}
	assert.Zero(t, count)
}

func TestWalker_EarlyBreak(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		writeFile(t, filepath.Join(tmpDir, name), name)
	}

	walker := fs.NewWalker()
	count := 0
	for range walker.WalkFiles(tmpDir, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestReader_Read(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "src", "scripts", "app.js")
	writeFile(t, path, "let a = 1;")
	mod := time.Now().Add(-time.Hour)

	assets, err := fs.NewReader().Read([]domain.SourceFile{{Path: path, Rel: "app.js", ModTime: mod}})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "app.js", assets[0].Rel)
	assert.Equal(t, path, assets[0].Source)
	assert.Equal(t, "let a = 1;", string(assets[0].Contents))
	assert.True(t, mod.Equal(assets[0].ModTime))

	_, err = fs.NewReader().Read([]domain.SourceFile{{Path: filepath.Join(tmpDir, "missing.js")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestWriter_Write(t *testing.T) {
	tmpDir := t.TempDir()
	w := fs.NewWriter(fs.NewHasher())
	assets := []domain.Asset{
		{Rel: "main.css", Contents: []byte("a{}"), SourceMap: []byte("{}")},
		{Rel: "nested/app.js", Contents: []byte("x")},
	}

	written, err := w.Write(tmpDir, assets)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "main.css"),
		filepath.Join(tmpDir, "main.css.map"),
		filepath.Join(tmpDir, "nested", "app.js"),
	}, written)

	data, err := os.ReadFile(filepath.Join(tmpDir, "nested", "app.js"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	// Identical content is not reported again.
	written, err = w.Write(tmpDir, assets)
	require.NoError(t, err)
	assert.Empty(t, written)

	assets[1].Contents = []byte("y")
	written, err = w.Write(tmpDir, assets)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "nested", "app.js")}, written)
}

func TestWriter_UnchangedRefreshesModTime(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "a.css")
	writeFile(t, target, "a{}")
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(target, old, old))

	_, err := fs.NewWriter(fs.NewHasher()).Write(tmpDir, []domain.Asset{{Rel: "a.css", Contents: []byte("a{}")}})
	require.NoError(t, err)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.ModTime().After(old))
}

func TestStaleness_Stale(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "out.webp")
	now := time.Now()
	checker := fs.NewStaleness()

	stale, err := checker.Stale(domain.SourceFile{ModTime: now}, dest)
	require.NoError(t, err)
	assert.True(t, stale, "missing destination is stale")

	writeFile(t, dest, "webp")
	require.NoError(t, os.Chtimes(dest, now, now))

	stale, err = checker.Stale(domain.SourceFile{ModTime: now.Add(-time.Minute)}, dest)
	require.NoError(t, err)
	assert.False(t, stale)

	stale, err = checker.Stale(domain.SourceFile{ModTime: now}, dest)
	require.NoError(t, err)
	assert.False(t, stale, "equal times are fresh")

	stale, err = checker.Stale(domain.SourceFile{ModTime: now.Add(time.Minute)}, dest)
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestCleaner_Clean(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "dist", "css", "main.css"), "a{}")
	writeFile(t, filepath.Join(tmpDir, "src", "main.scss"), "a{}")

	c := fs.NewCleaner()
	require.NoError(t, c.Clean(tmpDir, "dist"))

	_, err := os.Stat(filepath.Join(tmpDir, "dist"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(tmpDir, "src", "main.scss"))
	require.NoError(t, err)

	// A missing output root is not an error.
	require.NoError(t, c.Clean(tmpDir, "dist"))
}

func TestCleaner_RefusesOutsideRoot(t *testing.T) {
	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "project")
	writeFile(t, filepath.Join(tmpDir, "keep.txt"), "keep")

	c := fs.NewCleaner()
	for _, output := range []string{"..", ".", "", "../elsewhere", tmpDir} {
		err := c.Clean(root, output)
		require.Error(t, err, output)
		assert.Contains(t, err.Error(), "output path is outside project root")
	}

	_, err := os.Stat(filepath.Join(tmpDir, "keep.txt"))
	require.NoError(t, err)
}

func TestHasher(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "f")
	writeFile(t, path, "content")

	h := fs.NewHasher()
	sum, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, h.HashBytes([]byte("content")), sum)

	_, err = h.ComputeFileHash(filepath.Join(tmpDir, "missing"))
	require.Error(t, err)
}

func TestAcquireLock(t *testing.T) {
	root := t.TempDir()

	lock, err := fs.AcquireLock(root)
	require.NoError(t, err)

	_, err = fs.AcquireLock(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another kiln process")

	require.NoError(t, lock.Release())

	again, err := fs.AcquireLock(root)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}
