package fsutil

import (
	"context"
	"errors"
	"fmt"
)

// BackupMode says where the previous rendition of an output goes.
type BackupMode string

const (
	BackupModeSidecar BackupMode = "sidecar" // notes.html.mdspan.bak
	BackupModeNone    BackupMode = "none"
)

const BackupSuffix = ".mdspan.bak"

// BackupConfig is the backups section of the configuration.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns the defaults: backups off, sidecar mode.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Enabled: false, Mode: BackupModeSidecar}
}

// BackupPath returns the backup path for the given file, or "" when the
// mode stores no backups. Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies the file at path to its backup location before it is
// replaced. An older backup is overwritten, so the backup always holds the
// previous rendition. It returns false when backups are off or there is
// nothing to back up.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled {
		return false, nil
	}
	backupPath := BackupPath(path, cfg.Mode)
	if backupPath == "" {
		return false, nil
	}

	content, info, err := ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
