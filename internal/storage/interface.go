package storage

import "github.com/julianstephens/dayshape/internal/models"

// Provider is a history backend. Records are append-only and LoadAll returns
// them in insertion order.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// History
	Append(models.HistoryRecord) error
	LoadAll() ([]models.HistoryRecord, error)

	// Utils
	GetConfigPath() string
}
