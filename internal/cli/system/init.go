package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/dayshape/internal/cli"
	"github.com/julianstephens/dayshape/internal/cli/formatter"
	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/storage"
	"github.com/julianstephens/dayshape/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing SQLite history before initialising."`
	Source string `help:"JSON history file to import check-ins from." type:"existingfile"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if ctx.StoreKind != constants.StoreSQLite {
			return errors.New("--force is only supported for the sqlite store")
		}
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
		// a fresh handle so Init reopens the new file
		ctx.Store = sqlite.NewStore(path)
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Println(formatter.Success("Initialized dayshape history at: " + ctx.Store.GetConfigPath()))

	if c.Source != "" {
		n, err := importHistory(storage.NewJSONStore(c.Source), ctx.Store)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Printf("Imported %d check-ins from %s\n", n, c.Source)
	}
	return nil
}

// importHistory appends every record from src to dst in order
func importHistory(src, dst storage.Provider) (int, error) {
	records, err := src.LoadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read source history: %w", err)
	}
	for i, r := range records {
		if err := dst.Append(r); err != nil {
			return i, fmt.Errorf("failed to import record %d (%s): %w", i+1, r.Date, err)
		}
	}
	return len(records), nil
}

