package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

const appName = "mdspan"

// ConfigPaths holds one discovered file per configuration layer. An empty
// field means the layer has no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string // from --config
}

// Names tried when walking up from the working directory, most preferred
// first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".mdspan.yml",
	".mdspan.yaml",
	".mdspan.json",
	"mdspan.yml",
	"mdspan.yaml",
}

// Names tried inside the user and system config directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var configFileNames = []string{"config.yaml", "config.yml"}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths locates the system, user and project config files for a
// run started in workDir. The project search walks upward and stops at the
// first VCS root or the home directory.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), configFileNames),
		User:    userConfigFile(),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, appName)
}

// userConfigFile searches $XDG_CONFIG_HOME, then $XDG_CONFIG_DIRS.
func userConfigFile() string {
	for _, name := range configFileNames {
		if path, err := xdg.SearchConfigFile(filepath.Join(appName, name)); err == nil {
			return path
		}
	}
	return ""
}

// UserConfigPath returns where `mdspan init --user` writes the per-user
// config. The file need not exist.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileNames[0])
}

// FindProjectConfig walks upward from startDir (the working directory when
// empty) and returns the first project config file, or "" when the walk
// reaches a VCS root, the home directory or the filesystem root first.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
