package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/keyring"
	"github.com/julianstephens/dayshape/internal/logger"
	"github.com/julianstephens/dayshape/internal/storage"
	"github.com/julianstephens/dayshape/internal/storage/postgres"
	"github.com/julianstephens/dayshape/internal/storage/sqlite"
)

// StoreConfig selects and locates the history backend
type StoreConfig struct {
	Kind       string
	DBPath     string
	Connection string
}

// OpenStore returns the provider for cfg without loading it.
// A PostgreSQL connection string given by flag or environment must not carry
// a password; one read from the OS keyring may.
func OpenStore(cfg StoreConfig) (storage.Provider, error) {
	switch cfg.Kind {
	case "", constants.StoreJSON:
		return storage.NewJSONStore(constants.HistoryFileName), nil
	case constants.StoreSQLite:
		return sqlite.NewStore(cfg.DBPath), nil
	case constants.StorePostgres:
		connStr, err := postgresConnString(cfg.Connection)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(connStr), nil
	default:
		return nil, fmt.Errorf("unknown store %q: use %s, %s or %s", cfg.Kind, constants.StoreJSON, constants.StoreSQLite, constants.StorePostgres)
	}
}

func postgresConnString(explicit string) (string, error) {
	if explicit != "" {
		if _, err := postgres.ValidateConnString(explicit); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return "", fmt.Errorf("%w: store the full connection string with 'dayshape keyring set', or use a .pgpass file", err)
			}
			return "", err
		}
		return explicit, nil
	}

	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("no PostgreSQL connection string: pass --connection, set %s, or run 'dayshape keyring set'", constants.EnvDBConnection)
		}
		return "", err
	}
	if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return "", fmt.Errorf("connection string in keyring is invalid: %w", err)
	}
	logger.Debug("Using PostgreSQL connection string from keyring")
	return connStr, nil
}
