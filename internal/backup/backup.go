// Package backup snapshots the persisted documents so a bad edit or a failed
// disk can be walked back. Snapshots rotate: only the newest few are kept.
package backup

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultKeep is the default number of snapshots to retain.
	DefaultKeep = 14
	// BackupDirName is the name of the backup directory.
	BackupDirName = "backups"
	// BackupPrefix is the prefix for snapshot names.
	BackupPrefix = "daybook-"

	timestampFormat = "20060102-150405"
)

// Info describes one snapshot.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots either a directory of JSON documents or a single .db
// file. For a directory, only the top-level *.json documents are copied;
// attachment payloads are immutable once written and excluded to keep
// snapshots small.
type Manager struct {
	dataPath  string
	backupDir string
	keep      int
}

func NewManager(dataPath string, keep int) *Manager {
	if keep <= 0 {
		keep = DefaultKeep
	}
	root := dataPath
	if filepath.Ext(dataPath) == ".db" {
		root = filepath.Dir(dataPath)
	}
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(root, BackupDirName),
		keep:      keep,
	}
}

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create takes a snapshot and rotates old ones. It returns the snapshot
// path.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", fmt.Errorf("nothing to back up: %s does not exist", m.dataPath)
	}

	ext := ""
	if filepath.Ext(m.dataPath) == ".db" {
		ext = ".db"
	}
	base := BackupPrefix + time.Now().Format(timestampFormat)
	dest := filepath.Join(m.backupDir, base+ext)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup name")
		}
		dest = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d%s", base, counter, ext))
	}

	if err := m.snapshot(dest); err != nil {
		return "", err
	}

	if err := m.rotate(); err != nil {
		// Rotation failure should not fail the snapshot itself.
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
	}
	return dest, nil
}

func (m *Manager) snapshot(dest string) error {
	if filepath.Ext(m.dataPath) == ".db" {
		return copyFile(m.dataPath, dest)
	}

	if err := os.MkdirAll(dest, 0700); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	entries, err := os.ReadDir(m.dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		src := filepath.Join(m.dataPath, e.Name())
		if err := copyFile(src, filepath.Join(dest, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, BackupPrefix) {
			continue
		}
		stamp := strings.TrimPrefix(name, BackupPrefix)
		stamp = strings.TrimSuffix(stamp, ".db")
		if len(stamp) > len(timestampFormat) {
			stamp = stamp[:len(timestampFormat)] // drop collision counter
		}
		ts, err := time.Parse(timestampFormat, stamp)
		if err != nil {
			continue
		}
		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		size := info.Size()
		if info.IsDir() {
			size = dirSize(path)
		}
		backups = append(backups, Info{Path: path, Timestamp: ts, Size: size})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// Restore copies the named snapshot back over the live data. A safety
// snapshot of the current state is taken first.
func (m *Manager) Restore(backupPath string) error {
	info, err := os.Stat(backupPath)
	if err != nil {
		return fmt.Errorf("backup not found: %w", err)
	}

	if _, err := os.Stat(m.dataPath); err == nil {
		if _, err := m.Create(); err != nil {
			return fmt.Errorf("failed to snapshot current state before restore: %w", err)
		}
	}

	if !info.IsDir() {
		return copyFile(backupPath, m.dataPath)
	}

	entries, err := os.ReadDir(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	if err := os.MkdirAll(m.dataPath, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		src := filepath.Join(backupPath, e.Name())
		if err := copyFile(src, filepath.Join(m.dataPath, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) <= m.keep {
		return nil
	}
	for _, old := range backups[m.keep:] {
		if err := os.RemoveAll(old.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", old.Path, err)
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Sync()
}

func dirSize(path string) int64 {
	var total int64
	filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
