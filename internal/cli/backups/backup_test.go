package backups

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/dayshape/internal/cli"
	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/models"
	"github.com/julianstephens/dayshape/internal/storage"
)

func newContext(t *testing.T) *cli.Context {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, constants.HistoryFileName))
	if err := store.Append(models.HistoryRecord{Date: "2026-03-01", DayType: models.DayFlow, WorkMode: models.ModeSolo, CapacityScore: 9, Energy: 5, Focus: 5, EmotionalLoad: 1}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	return &cli.Context{Store: store, StoreKind: constants.StoreJSON, ConfigDir: dir}
}

func TestBackupCreateListRestore(t *testing.T) {
	ctx := newContext(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d (err %v)", len(backups), err)
	}

	if err := ctx.Store.Append(models.HistoryRecord{Date: "2026-03-02", DayType: models.DaySurvival, WorkMode: models.ModeClient}); err != nil {
		t.Fatal(err)
	}

	restore := &BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path), Yes: true}
	if err := restore.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	records, err := ctx.Store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Date != "2026-03-01" {
		t.Errorf("after restore got %+v", records)
	}
}

func TestBackupListEmpty(t *testing.T) {
	if err := (&BackupListCmd{}).Run(newContext(t)); err != nil {
		t.Errorf("list failed: %v", err)
	}
}

func TestBackupCommandsRejectPostgres(t *testing.T) {
	ctx := newContext(t)
	ctx.StoreKind = constants.StorePostgres

	if err := (&BackupCreateCmd{}).Run(ctx); !errors.Is(err, cli.ErrNoFileBackups) {
		t.Errorf("create error = %v, want ErrNoFileBackups", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); !errors.Is(err, cli.ErrNoFileBackups) {
		t.Errorf("list error = %v, want ErrNoFileBackups", err)
	}
}

func TestResolveBackupPath(t *testing.T) {
	ctx := newContext(t)
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	mgr, _ := ctx.BackupManager()
	backups, _ := mgr.ListBackups()
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup")
	}
	full := backups[0].Path

	if got, err := resolveBackupPath(full, mgr.BackupDir()); err != nil || got != full {
		t.Errorf("absolute path: got %q, %v", got, err)
	}
	if got, err := resolveBackupPath(filepath.Base(full), mgr.BackupDir()); err != nil || got != full {
		t.Errorf("bare name: got %q, %v", got, err)
	}
	if _, err := resolveBackupPath("dayshape-19990101-000000.json", mgr.BackupDir()); err == nil {
		t.Error("expected error for unknown backup")
	}
}
