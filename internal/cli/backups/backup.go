package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayshape/internal/cli"
	"github.com/julianstephens/dayshape/internal/cli/formatter"
	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/logger"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Println(formatter.Success("Backup created: " + filepath.Base(backupPath)))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.BackupDir())
		return nil
	}

	rows := make([][]string, 0, len(backups))
	for _, b := range backups {
		rows = append(rows, []string{
			b.Timestamp.Format("2006-01-02 15:04:05"),
			filepath.Base(b.Path),
			fmt.Sprintf("%.1f KB", float64(b.Size)/1024.0),
		})
	}

	fmt.Printf("Available %s history backups (%d total, keeping most recent %d):\n\n", mgr.Kind(), len(backups), constants.MaxBackups)
	fmt.Print(formatter.RenderTable([]string{"Taken", "File", "Size"}, rows))
	fmt.Printf("\nBackup directory: %s\n", mgr.BackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `help:"Restore without asking for confirmation." short:"y"`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	backupPath, err := resolveBackupPath(c.BackupFile, mgr.BackupDir())
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Replace your current history with this backup?").
			Description(fmt.Sprintf("Restore from: %s\nA backup of the current history is taken first.\nClose any other dayshape sessions before continuing.", backupPath)).
			Affirmative("Restore").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirmed {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close history store before restore", "error", err)
	}

	saved, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	if saved != "" {
		fmt.Printf("Previous history saved as: %s\n", filepath.Base(saved))
	}
	fmt.Println(formatter.Success("History restored from " + filepath.Base(backupPath)))
	return nil
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory, or a bare file name inside the backup directory.
func resolveBackupPath(name, backupDir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}

	if _, err := os.Stat(name); err == nil {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}

	candidate := filepath.Join(backupDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
