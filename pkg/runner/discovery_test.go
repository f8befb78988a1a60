package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdspan/pkg/runner"
)

// writeTree creates the given files (relative to dir) with fixed content.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+f+"\n"), 0o644))
	}
}

// rel strips dir from discovered paths for compact assertions.
func rel(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"src/main.go",
		"notes.txt",
		".hidden.md",
		".git/config.md",
		"docs/.secret.md",
	)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/api.markdown", "docs/guide.md", "readme.md"}, rel(t, dir, files))
}

func TestDiscover_ExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "README", "vendor/doc.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:        []string{"README", "vendor/doc.md"},
		WorkingDir:   dir,
		ExcludeGlobs: []string{"vendor/**"},
	})
	require.NoError(t, err)

	// Named files bypass the extension filter but not exclusions.
	assert.Equal(t, []string{"README"}, rel(t, dir, files))
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "file.md", "file.markdown", "file.txt", "file.MDX")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".mdx", ".txt"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"file.MDX", "file.txt"}, rel(t, dir, files))
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	tree := []string{
		"readme.md",
		"CHANGELOG.md",
		"docs/guide.md",
		"docs/api/ref.md",
		"vendor/pkg/doc.md",
		"node_modules/lib/readme.md",
		"src/vendor/inner.md",
	}

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "exclude directories",
			exclude: []string{"vendor/**", "node_modules/**"},
			want:    []string{"CHANGELOG.md", "docs/api/ref.md", "docs/guide.md", "readme.md", "src/vendor/inner.md"},
		},
		{
			name:    "exclude anywhere",
			exclude: []string{"**/vendor/**", "node_modules"},
			want:    []string{"CHANGELOG.md", "docs/api/ref.md", "docs/guide.md", "readme.md"},
		},
		{
			name:    "exclude by base name",
			exclude: []string{"readme.md", "CHANGELOG.*"},
			want:    []string{"docs/api/ref.md", "docs/guide.md", "src/vendor/inner.md", "vendor/pkg/doc.md"},
		},
		{
			name:    "single star stays in one directory",
			include: []string{"docs/*.md"},
			want:    []string{"docs/guide.md"},
		},
		{
			name:    "include subtree",
			include: []string{"docs/**"},
			want:    []string{"docs/api/ref.md", "docs/guide.md"},
		},
		{
			name:    "alternatives",
			include: []string{"{readme,CHANGELOG}.md"},
			exclude: []string{"node_modules/**"},
			want:    []string{"CHANGELOG.md", "readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree...)

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				IncludeGlobs: tt.include,
				ExcludeGlobs: tt.exclude,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, dir, files))
		})
	}
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"docs/[a"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude pattern")

	require.Error(t, runner.CompileGlob("[a"))
	require.NoError(t, runner.CompileGlob("**/*.md"))
}

func TestDiscover_DeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "b.md", "a/z.md", "c.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"c.md", ".", "a", "c.md"},
		WorkingDir: dir,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a/z.md", "b.md", "c.md"}, rel(t, dir, files))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"nonexistent"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "real/doc.md")

	external := t.TempDir()
	writeTree(t, external, "external.md")

	if err := os.Symlink(filepath.Join(dir, "real", "doc.md"), filepath.Join(dir, "link.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(external, filepath.Join(dir, "linked")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"link.md", "real/doc.md"}, rel(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join(external, "external.md"))
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".md", ".markdown"}, runner.DefaultExtensions())
}
