package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	matcher, err := newMatcher(opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// Explicitly named files skip the extension filter but still
			// honor exclusions.
			if !matcher.excluded(relative(workDir, absPath)) {
				add(absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, workDir, matcher, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func relative(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// walkDirectory recursively walks a directory and returns matching Markdown files.
func walkDirectory(
	ctx context.Context,
	root string,
	workDir string,
	matcher *matcher,
	followSymlinks bool,
) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath := relative(workDir, path)

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && matcher.excluded(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // unreadable symlink targets are skipped
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target; WalkDir uses Lstat on its root.
				subFiles, err := walkDirectory(ctx, realPath, workDir, matcher, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if matcher.matches(path, relPath) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matcher holds the compiled discovery filters.
type matcher struct {
	extensions []string
	include    []pattern
	exclude    []pattern
}

// pattern is a compiled glob with the fallbacks users expect from
// .gitignore-style patterns.
type pattern struct {
	full glob.Glob

	// anywhere matches a leading "**/" pattern at the top level too.
	anywhere glob.Glob

	// dir is the directory named by a trailing "/**", which matches itself.
	dir string

	// base matches slash-free patterns against the file name.
	base bool
}

func newMatcher(opts Options) (*matcher, error) {
	include, err := compilePatterns(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include pattern: %w", err)
	}
	exclude, err := compilePatterns(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}

	exts := make([]string, 0, len(opts.effectiveExtensions()))
	for _, ext := range opts.effectiveExtensions() {
		exts = append(exts, strings.ToLower(ext))
	}

	return &matcher{extensions: exts, include: include, exclude: exclude}, nil
}

// CompileGlob compiles a path pattern the way discovery does. It is exposed
// so configuration can be validated before a run.
func CompileGlob(text string) error {
	_, err := compilePattern(text)
	return err
}

func compilePatterns(texts []string) ([]pattern, error) {
	patterns := make([]pattern, 0, len(texts))
	for _, text := range texts {
		p, err := compilePattern(text)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func compilePattern(text string) (pattern, error) {
	text = filepath.ToSlash(text)

	full, err := glob.Compile(text, '/')
	if err != nil {
		return pattern{}, fmt.Errorf("%q: %w", text, err)
	}
	p := pattern{full: full, base: !strings.Contains(text, "/")}

	if rest, ok := strings.CutPrefix(text, "**/"); ok {
		p.anywhere, err = glob.Compile(rest, '/')
		if err != nil {
			return pattern{}, fmt.Errorf("%q: %w", text, err)
		}
	}
	if dir, ok := strings.CutSuffix(text, "/**"); ok && !strings.ContainsAny(dir, "*?[{") {
		p.dir = dir
	}

	return p, nil
}

func (p pattern) match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)

	switch {
	case p.full.Match(relPath):
		return true
	case p.anywhere != nil && p.anywhere.Match(relPath):
		return true
	case p.dir != "" && relPath == p.dir:
		return true
	case p.base && p.full.Match(filepath.Base(relPath)):
		return true
	}
	return false
}

func matchAny(relPath string, patterns []pattern) bool {
	for _, p := range patterns {
		if p.match(relPath) {
			return true
		}
	}
	return false
}

func (m *matcher) excluded(relPath string) bool {
	return matchAny(relPath, m.exclude)
}

// matches checks a walked file against the extension, exclude and include
// filters.
func (m *matcher) matches(path, relPath string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	found := false
	for _, e := range m.extensions {
		if e == ext {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	if m.excluded(relPath) {
		return false
	}

	if len(m.include) > 0 && !matchAny(relPath, m.include) {
		return false
	}

	return true
}
