package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/dayshape/internal/backup"
	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/logger"
	"github.com/julianstephens/dayshape/internal/models"
	"github.com/julianstephens/dayshape/internal/patterns"
	"github.com/julianstephens/dayshape/internal/storage"
)

// ErrNoFileBackups is returned for history backends that are not a local file
var ErrNoFileBackups = errors.New("backups are only available for the json and sqlite history stores")

type Context struct {
	Store     storage.Provider
	StoreKind string
	ConfigDir string
	// Now is overridable in tests
	Now func() time.Time
}

func (c *Context) Today() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// BackupManager returns a backup manager for the history file, with backups
// kept under the config directory.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if c.StoreKind == constants.StorePostgres {
		return nil, ErrNoFileBackups
	}
	return backup.NewManager(c.Store.GetConfigPath(), filepath.Join(c.ConfigDir, constants.BackupDirName)), nil
}

// PerformAutomaticBackup backs up an existing history file and only logs failures
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := os.Stat(c.Store.GetConfigPath()); err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) Analyzer() *patterns.Analyzer {
	return patterns.NewAnalyzer(c.Store, nil)
}

// ParseWorkMode accepts "client", "solo" or the full work mode names.
func ParseWorkMode(s string) (models.WorkMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client", strings.ToLower(string(models.ModeClient)):
		return models.ModeClient, nil
	case "solo", strings.ToLower(string(models.ModeSolo)):
		return models.ModeSolo, nil
	default:
		return "", fmt.Errorf("invalid work mode %q: use client or solo", s)
	}
}

// ValidateRating checks a rating is within the allowed range
func ValidateRating(name string, v int) error {
	if v < constants.MinRating || v > constants.MaxRating {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, constants.MinRating, constants.MaxRating, v)
	}
	return nil
}

// OptionalTask turns an empty flag value into an absent task
func OptionalTask(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
