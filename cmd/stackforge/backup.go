package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// BackupManager defines the interface for manifest backup operations.
//
// # Description
//
// BackupManager preserves the previous compose manifest before clean-mode
// regeneration, so a broken regeneration can be rolled back.
//
// # Thread Safety
//
// Implementations should be safe for concurrent use.
type BackupManager interface {
	// BackupBeforeOverwrite backs up a file before it is removed or replaced.
	// Returns the backup path, or "" if the file did not exist.
	BackupBeforeOverwrite(path string) (backupPath string, err error)

	// ListBackups returns all backups for a file, newest first.
	ListBackups(originalPath string) ([]BackupInfo, error)

	// RestoreBackup copies a backup back to its original location.
	RestoreBackup(backupPath string) error

	// CleanOldBackups removes backups older than maxAge and returns the count.
	CleanOldBackups(originalPath string, maxAge time.Duration) (int, error)
}

// BackupInfo contains information about a single backup.
type BackupInfo struct {
	// Path is the full path to the backup file.
	Path string

	// OriginalPath is the file that was backed up.
	OriginalPath string

	// CreatedAt is parsed from the backup filename timestamp.
	CreatedAt time.Time

	// Size is the backup size in bytes.
	Size int64
}

// BackupConfig configures backup naming, location, and retention.
type BackupConfig struct {
	// MaxBackups is the retention count per file. Default: 5
	MaxBackups int

	// BackupSuffix is appended before the timestamp. Default: ".bak"
	BackupSuffix string

	// TimeFormat is the timestamp format. Default: "2006-01-02_150405"
	TimeFormat string

	// BackupDir is where backups are stored. Required; created on demand.
	BackupDir string
}

// DefaultBackupConfig returns defaults with backups stored in backupDir.
func DefaultBackupConfig(backupDir string) BackupConfig {
	return BackupConfig{
		MaxBackups:   5,
		BackupSuffix: ".bak",
		TimeFormat:   "2006-01-02_150405",
		BackupDir:    backupDir,
	}
}

// DefaultBackupManager implements BackupManager for manifest files.
//
// Backups are timestamped copies in a dedicated backup directory:
//
//	docker-compose.yml -> backups/docker-compose.yml.bak.2026-08-23_151203
//
// Old backups rotate out once MaxBackups is exceeded. Unlike a rename-based
// scheme, the original file is copied, so a backup never disturbs a
// regeneration already in progress.
type DefaultBackupManager struct {
	config BackupConfig
}

// NewBackupManager creates a backup manager, filling config defaults.
func NewBackupManager(config BackupConfig) *DefaultBackupManager {
	if config.MaxBackups <= 0 {
		config.MaxBackups = 5
	}
	if config.BackupSuffix == "" {
		config.BackupSuffix = ".bak"
	}
	if config.TimeFormat == "" {
		config.TimeFormat = "2006-01-02_150405"
	}
	return &DefaultBackupManager{config: config}
}

// BackupBeforeOverwrite copies path into the backup directory with a
// timestamped name. A missing source is not an error: there is nothing to
// preserve on a first run.
func (m *DefaultBackupManager) BackupBeforeOverwrite(path string) (string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("refusing to back up directory %s", path)
	}

	if err := os.MkdirAll(m.config.BackupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	backupPath := m.generateBackupPath(path)
	if err := copyFile(path, backupPath, info.Mode()); err != nil {
		return "", err
	}

	// Rotation failure is not fatal: the backup itself succeeded.
	_ = m.rotateBackups(path)

	return backupPath, nil
}

// ListBackups finds all backups for originalPath, sorted newest first.
func (m *DefaultBackupManager) ListBackups(originalPath string) ([]BackupInfo, error) {
	prefix := filepath.Base(originalPath) + m.config.BackupSuffix + "."

	entries, err := os.ReadDir(m.config.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup dir: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		createdAt, err := time.Parse(m.config.TimeFormat, strings.TrimPrefix(name, prefix))
		if err != nil {
			continue // not one of ours
		}

		backups = append(backups, BackupInfo{
			Path:         filepath.Join(m.config.BackupDir, name),
			OriginalPath: originalPath,
			CreatedAt:    createdAt,
			Size:         info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// RestoreBackup copies a backup over its original location. The backup file
// itself is kept, so a restore can be repeated.
func (m *DefaultBackupManager) RestoreBackup(backupPath string) error {
	originalBase := m.originalBaseFromBackup(backupPath)
	if originalBase == "" {
		return fmt.Errorf("cannot determine original file from backup name: %s", backupPath)
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		return fmt.Errorf("failed to stat backup: %w", err)
	}

	// The original lives one level above the backup directory.
	originalPath := filepath.Join(filepath.Dir(m.config.BackupDir), originalBase)
	if err := copyFile(backupPath, originalPath, info.Mode()); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}

// CleanOldBackups removes backups older than maxAge.
func (m *DefaultBackupManager) CleanOldBackups(originalPath string, maxAge time.Duration) (int, error) {
	backups, err := m.ListBackups(originalPath)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, backup := range backups {
		if backup.CreatedAt.Before(cutoff) {
			if err := os.Remove(backup.Path); err != nil {
				continue
			}
			removed++
		}
	}
	return removed, nil
}

// generateBackupPath creates a timestamped backup path in the backup dir.
func (m *DefaultBackupManager) generateBackupPath(originalPath string) string {
	timestamp := time.Now().Format(m.config.TimeFormat)
	base := filepath.Base(originalPath)
	return filepath.Join(m.config.BackupDir, base+m.config.BackupSuffix+"."+timestamp)
}

// rotateBackups removes old backups exceeding MaxBackups.
func (m *DefaultBackupManager) rotateBackups(originalPath string) error {
	backups, err := m.ListBackups(originalPath)
	if err != nil {
		return err
	}
	for i := m.config.MaxBackups; i < len(backups); i++ {
		os.Remove(backups[i].Path)
	}
	return nil
}

// originalBaseFromBackup extracts the original filename from a backup name.
func (m *DefaultBackupManager) originalBaseFromBackup(backupPath string) string {
	base := filepath.Base(backupPath)
	suffixIdx := strings.Index(base, m.config.BackupSuffix+".")
	if suffixIdx <= 0 {
		return ""
	}
	return base[:suffixIdx]
}

// copyFile copies src to dst with the given mode, truncating dst.
func copyFile(src, dst string, mode os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy: %w", err)
	}
	return nil
}

// Compile-time interface check
var _ BackupManager = (*DefaultBackupManager)(nil)
