package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/dayshape/internal/logger"
	"github.com/julianstephens/dayshape/internal/migration"
	"github.com/julianstephens/dayshape/internal/models"
	"github.com/julianstephens/dayshape/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'dayshape init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	return runner.ValidateVersion()
}

func (s *Store) Append(record models.HistoryRecord) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT INTO history (id, date, day_type, work_mode, capacity_score, energy, focus, emotional_load, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		record.Date,
		string(record.DayType),
		string(record.WorkMode),
		record.CapacityScore,
		record.Energy,
		record.Focus,
		record.EmotionalLoad,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to append history record: %w", err)
	}
	return nil
}

func (s *Store) LoadAll() ([]models.HistoryRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT date, day_type, work_mode, capacity_score, energy, focus, emotional_load
		FROM history
		ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	records := []models.HistoryRecord{}
	for rows.Next() {
		var r models.HistoryRecord
		var dayType, workMode string
		if err := rows.Scan(&r.Date, &dayType, &workMode, &r.CapacityScore, &r.Energy, &r.Focus, &r.EmotionalLoad); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		r.DayType = models.DayType(dayType)
		r.WorkMode = models.WorkMode(workMode)
		records = append(records, r)
	}

	return records, rows.Err()
}

func (s *Store) GetConfigPath() string {
	return s.path
}
