package backup

import (
	"cmp"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/logger"
	"github.com/julianstephens/dayshape/internal/models"
)

const timestampLayout = "20060102-150405"

// Kind is the on-disk format of the history being backed up
type Kind int

const (
	KindJSON Kind = iota
	KindSQLite
)

func (k Kind) String() string {
	if k == KindJSON {
		return "json"
	}
	return "sqlite"
}

// Info describes one backup file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
	seq       int
}

// Manager creates, lists and restores copies of a file-backed history.
// Backups live in a separate directory and keep the source file's extension.
type Manager struct {
	srcPath   string
	backupDir string
	kind      Kind
	suffix    string
}

// NewManager returns a manager for the history file at srcPath. A ".json"
// source is treated as a JSON history, anything else as an SQLite database.
func NewManager(srcPath, backupDir string) *Manager {
	kind := KindSQLite
	if strings.EqualFold(filepath.Ext(srcPath), ".json") {
		kind = KindJSON
	}
	suffix := filepath.Ext(srcPath)
	if suffix == "" {
		suffix = ".db"
	}
	return &Manager{
		srcPath:   srcPath,
		backupDir: backupDir,
		kind:      kind,
		suffix:    suffix,
	}
}

func (m *Manager) BackupDir() string {
	return m.backupDir
}

func (m *Manager) Kind() Kind {
	return m.kind
}

// CreateBackup copies the history into the backup directory and prunes the
// oldest backups beyond constants.MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	path, err := m.createBackup()
	if err != nil {
		return "", err
	}

	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) createBackup() (string, error) {
	if _, err := os.Stat(m.srcPath); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("history does not exist: %s", m.srcPath)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest, err := m.nextName(time.Now())
	if err != nil {
		return "", err
	}

	switch m.kind {
	case KindJSON:
		if err := m.verify(m.srcPath); err != nil {
			return "", fmt.Errorf("refusing to back up invalid history: %w", err)
		}
		err = copyFile(m.srcPath, dest)
	default:
		err = vacuumInto(m.srcPath, dest)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up history: %w", err)
	}

	logger.Debug("Created backup", "path", dest)
	return dest, nil
}

// nextName returns an unused backup path for now, adding a counter when
// several backups are taken within the same second.
func (m *Manager) nextName(now time.Time) (string, error) {
	stamp := now.Format(timestampLayout)
	path := filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+m.suffix)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if n > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, n, m.suffix))
	}
}

func vacuumInto(srcPath, destPath string) error {
	db, err := sql.Open("sqlite", srcPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := db.Exec("VACUUM INTO ?", destPath); err != nil {
		logger.Warn("VACUUM INTO failed, falling back to file copy", "error", err)
		return copyFile(srcPath, destPath)
	}
	return nil
}

// ListBackups returns the backups for this history's format, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, seq, ok := parseName(entry.Name(), m.suffix)
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      fi.Size(),
			seq:       seq,
		})
	}

	slices.SortFunc(backups, func(a, b Info) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})
	return backups, nil
}

// parseName extracts the timestamp and same-second counter from a backup file
// name of the form <prefix><timestamp>[-<n>]<suffix>.
func parseName(name, suffix string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, suffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), suffix)

	seq := 0
	if len(stamp) > len(timestampLayout) && stamp[len(timestampLayout)] == '-' {
		n, err := strconv.Atoi(stamp[len(timestampLayout)+1:])
		if err != nil {
			return time.Time{}, 0, false
		}
		seq = n
		stamp = stamp[:len(timestampLayout)]
	}

	ts, err := time.ParseInLocation(timestampLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, seq, true
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the history with the backup at backupPath. The current
// history, if any, is backed up first; that path is returned (empty when there
// was nothing to save).
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verify(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var saved string
	if _, err := os.Stat(m.srcPath); err == nil {
		// no rotation here so the backup being restored cannot be pruned
		saved, err = m.createBackup()
		if err != nil {
			return "", fmt.Errorf("failed to back up current history before restore: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(m.srcPath), 0700); err != nil {
		return "", fmt.Errorf("failed to create history directory: %w", err)
	}

	tempPath := m.srcPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.srcPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tempPath, "error", removeErr)
		}
		return "", fmt.Errorf("failed to restore history: %w", err)
	}

	return saved, nil
}

func (m *Manager) verify(path string) error {
	if m.kind == KindJSON {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var records []models.HistoryRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("not a history array: %w", err)
		}
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
