package backup

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/models"
)

func writeHistory(t *testing.T, path string, records []models.HistoryRecord) {
	t.Helper()
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal history: %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write history: %v", err)
	}
}

func readHistory(t *testing.T, path string) []models.HistoryRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}
	var records []models.HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("failed to parse history: %v", err)
	}
	return records
}

func sampleRecord(date string) models.HistoryRecord {
	return models.HistoryRecord{
		Date:          date,
		DayType:       models.DayMaintenance,
		WorkMode:      models.ModeClient,
		CapacityScore: 5,
		Energy:        3,
		Focus:         3,
		EmotionalLoad: 1,
	}
}

func setupJSON(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, constants.HistoryFileName)
	writeHistory(t, src, []models.HistoryRecord{sampleRecord("2026-03-01"), sampleRecord("2026-03-02")})
	return NewManager(src, filepath.Join(dir, constants.BackupDirName)), src
}

func setupSQLite(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "history.db")

	db, err := sql.Open("sqlite", src)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE history (date TEXT, capacity_score INTEGER)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO history (date, capacity_score) VALUES ('2026-03-01', 5), ('2026-03-02', 7)`); err != nil {
		t.Fatalf("failed to insert rows: %v", err)
	}

	return NewManager(src, filepath.Join(dir, constants.BackupDirName)), src
}

func TestNewManager_Kind(t *testing.T) {
	tests := []struct {
		path   string
		kind   Kind
		suffix string
	}{
		{"planner_history.json", KindJSON, ".json"},
		{"history.JSON", KindJSON, ".JSON"},
		{"history.db", KindSQLite, ".db"},
		{"history", KindSQLite, ".db"},
	}

	for _, tt := range tests {
		m := NewManager(tt.path, "backups")
		if m.Kind() != tt.kind || m.suffix != tt.suffix {
			t.Errorf("NewManager(%q) kind=%v suffix=%q, want %v %q", tt.path, m.Kind(), m.suffix, tt.kind, tt.suffix)
		}
	}
}

func TestKind_String(t *testing.T) {
	if KindJSON.String() != "json" || KindSQLite.String() != "sqlite" {
		t.Errorf("Kind strings = %q, %q", KindJSON, KindSQLite)
	}
}

func TestCreateBackup_JSON(t *testing.T) {
	mgr, _ := setupJSON(t)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	name := filepath.Base(backupPath)
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, ".json") {
		t.Errorf("unexpected backup name %q", name)
	}
	if got := readHistory(t, backupPath); len(got) != 2 {
		t.Errorf("backup has %d records, want 2", len(got))
	}
}

func TestCreateBackup_JSONRejectsCorruptHistory(t *testing.T) {
	mgr, src := setupJSON(t)
	if err := os.WriteFile(src, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to corrupt history: %v", err)
	}

	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error backing up a corrupt history")
	}
}

func TestCreateBackup_SQLite(t *testing.T) {
	mgr, _ := setupSQLite(t)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", backupPath)
	if err != nil {
		t.Fatalf("failed to open backup database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count); err != nil {
		t.Fatalf("failed to query backup database: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows in backup, got %d", count)
	}
}

func TestCreateBackup_MissingSource(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(filepath.Join(dir, "missing.json"), filepath.Join(dir, "backups"))

	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for missing history")
	}
}

func TestListBackups_Empty(t *testing.T) {
	mgr, _ := setupJSON(t)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestListBackups_NewestFirstAndFiltered(t *testing.T) {
	mgr, _ := setupJSON(t)
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}

	names := []string{
		"dayshape-20260301-080000.json",
		"dayshape-20260303-080000.json",
		"dayshape-20260303-080000-1.json",
		"dayshape-20260302-080000.json",
		"dayshape-20260304-080000.db", // other format
		"dayshape-notatime.json",
		"other-20260305-080000.json",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), n), []byte("[]"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}

	want := []string{
		"dayshape-20260303-080000-1.json",
		"dayshape-20260303-080000.json",
		"dayshape-20260302-080000.json",
		"dayshape-20260301-080000.json",
	}
	if len(backups) != len(want) {
		t.Fatalf("expected %d backups, got %d", len(want), len(backups))
	}
	for i, w := range want {
		if got := filepath.Base(backups[i].Path); got != w {
			t.Errorf("backup %d = %s, want %s", i, got, w)
		}
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name   string
		ok     bool
		seq    int
		minute int
	}{
		{"dayshape-20260304-091500.json", true, 0, 15},
		{"dayshape-20260304-091500-12.json", true, 12, 15},
		{"dayshape-20260304-0915.json", false, 0, 0},
		{"dayshape-20260304-091500-x.json", false, 0, 0},
		{"dayshape-20260304-091500.db", false, 0, 0},
	}

	for _, tt := range tests {
		ts, seq, ok := parseName(tt.name, ".json")
		if ok != tt.ok {
			t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && (seq != tt.seq || ts.Minute() != tt.minute) {
			t.Errorf("parseName(%q) = %v, %d", tt.name, ts, seq)
		}
	}
}

func TestRotateBackups(t *testing.T) {
	mgr, _ := setupJSON(t)

	for range constants.MaxBackups + 3 {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
}

func TestRestoreBackup_JSON(t *testing.T) {
	mgr, src := setupJSON(t)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	writeHistory(t, src, []models.HistoryRecord{sampleRecord("2026-03-09")})

	saved, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if saved == "" {
		t.Error("expected the replaced history to be backed up")
	} else if got := readHistory(t, saved); len(got) != 1 || got[0].Date != "2026-03-09" {
		t.Errorf("pre-restore backup = %+v", got)
	}

	got := readHistory(t, src)
	if len(got) != 2 || got[0].Date != "2026-03-01" {
		t.Errorf("restored history = %+v", got)
	}

	if _, err := os.Stat(src + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file was left behind")
	}
}

func TestRestoreBackup_MissingCurrentHistory(t *testing.T) {
	mgr, src := setupJSON(t)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if err := os.Remove(src); err != nil {
		t.Fatal(err)
	}

	saved, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if saved != "" {
		t.Errorf("expected no pre-restore backup, got %s", saved)
	}
	if got := readHistory(t, src); len(got) != 2 {
		t.Errorf("restored %d records, want 2", len(got))
	}
}

func TestRestoreBackup_Invalid(t *testing.T) {
	mgr, src := setupJSON(t)
	dir := filepath.Dir(src)

	if _, err := mgr.RestoreBackup(filepath.Join(dir, "nope.json")); err == nil {
		t.Error("expected error for missing backup")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"date": "2026-03-01"}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bad); err == nil {
		t.Error("expected error restoring a non-array backup")
	}

	if got := readHistory(t, src); len(got) != 2 {
		t.Errorf("history changed after failed restore: %+v", got)
	}
}

func TestRestoreBackup_SQLiteRejectsGarbage(t *testing.T) {
	mgr, src := setupSQLite(t)

	bad := filepath.Join(filepath.Dir(src), "garbage.db")
	if err := os.WriteFile(bad, []byte("definitely not sqlite, just some bytes padded out to look like a header......."), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bad); err == nil {
		t.Error("expected error restoring a non-SQLite file")
	}
}

func TestNextName_AddsCounter(t *testing.T) {
	mgr, _ := setupJSON(t)
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, 3, 4, 9, 15, 0, 0, time.Local)
	first, err := mgr.nextName(now)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(first, []byte("[]"), 0600); err != nil {
		t.Fatal(err)
	}
	second, err := mgr.nextName(now)
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Base(first) != "dayshape-20260304-091500.json" {
		t.Errorf("first = %s", filepath.Base(first))
	}
	if filepath.Base(second) != "dayshape-20260304-091500-1.json" {
		t.Errorf("second = %s", filepath.Base(second))
	}
}
