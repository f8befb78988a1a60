package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdspan/pkg/fsutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and fingerprint", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		writeFile(t, path, "# hello\n")

		content, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "# hello\n", string(content))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(8), info.Size)
		assert.NotZero(t, info.Hash)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "whatever.md")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		writeFile(t, path, "same")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		for _, strict := range []bool{false, true} {
			modified, err := fsutil.CheckModified(context.Background(), info, strict)
			require.NoError(t, err)
			assert.False(t, modified, "strict=%v", strict)
		}
	})

	t.Run("size changed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		writeFile(t, path, "before")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		writeFile(t, path, "after, longer")
		modified, err := fsutil.CheckModified(context.Background(), info, false)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("same size and time only caught in strict mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		writeFile(t, path, "aaaa")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		writeFile(t, path, "bbbb")
		require.NoError(t, os.Chtimes(path, time.Now(), info.ModTime))

		quick, err := fsutil.CheckModified(context.Background(), info, false)
		require.NoError(t, err)
		assert.False(t, quick)

		strict, err := fsutil.CheckModified(context.Background(), info, true)
		require.NoError(t, err)
		assert.True(t, strict)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		writeFile(t, path, "x")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(context.Background(), info, true)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(context.Background(), nil, true)
		require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source, ext, want string
	}{
		{"notes.md", ".html", "notes.html"},
		{"docs/guide.markdown", "html", "docs/guide.html"},
		{"README", ".html", "README.html"},
		{"a.b/c.md", ".html", "a.b/c.html"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fsutil.OutputPath(tt.source, tt.ext), tt.source)
	}
}
