package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/dayshape/internal/cli"
	"github.com/julianstephens/dayshape/internal/cli/formatter"
	"github.com/julianstephens/dayshape/internal/keyring"
	"github.com/julianstephens/dayshape/internal/storage/postgres"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// the keyring is encrypted, so a password is acceptable here
		fmt.Println(formatter.Warning("Connection string contains a password; it will be stored in the encrypted OS keyring."))
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println(formatter.Success("Connection string stored in OS keyring"))
	fmt.Println("  Use --store postgres without --connection to pick it up")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'dayshape keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	fmt.Println("Connection string retrieved from keyring:")
	fmt.Println(keyring.Mask(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Println(formatter.Success("Connection string deleted from OS keyring"))
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println(formatter.StyleRed.Render("✗") + " OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}

	fmt.Println(formatter.Success("OS keyring is available"))
	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println(formatter.Success("Connection string is stored in keyring"))
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println(formatter.Dim("No connection string stored in keyring"))
	}
	return nil
}
