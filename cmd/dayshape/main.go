package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayshape/internal/cli"
	"github.com/julianstephens/dayshape/internal/cli/backups"
	"github.com/julianstephens/dayshape/internal/cli/history"
	"github.com/julianstephens/dayshape/internal/cli/plans"
	"github.com/julianstephens/dayshape/internal/cli/system"
	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/errors"
	"github.com/julianstephens/dayshape/internal/logger"
)

var CLI struct {
	Version    kong.VersionFlag
	Store      string `help:"History backend: json (planner_history.json in the working directory), sqlite or postgres." enum:"json,sqlite,postgres" default:"json" env:"DAYSHAPE_STORE"`
	DB         string `help:"SQLite history path." type:"path" default:"${db_path}" env:"DAYSHAPE_DB"`
	Connection string `help:"PostgreSQL connection string. Must NOT embed a password: use the OS keyring (dayshape keyring set) or .pgpass instead." env:"DAYSHAPE_DB_CONNECTION"`
	ConfigDir  string `help:"Directory for logs and backups." type:"path" default:"${config_dir}" env:"DAYSHAPE_CONFIG_DIR"`
	Debug      bool   `help:"Enable debug logging to stderr."`

	Tui     system.TuiCmd `cmd:"" help:"Run the interactive check-in." default:"1"`
	Plan    plans.PlanCmd `cmd:"" help:"Plan today from flags, asking for anything missing."`
	Init    system.InitCmd `cmd:"" help:"Initialize the sqlite or postgres history."`
	History struct {
		List    history.ListCmd    `cmd:"" help:"List logged check-ins." default:"1"`
		Reflect history.ReflectCmd `cmd:"" help:"Reflect on patterns in your history."`
	} `cmd:"" help:"Inspect your check-in history."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage history backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Shape your day around your capacity, not your willpower."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"db_path":    constants.DefaultSQLitePath,
			"config_dir": constants.DefaultConfigDir,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: CLI.ConfigDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	defer logger.Close()

	command := ctx.Command()
	logger.Debug("Starting", "command", command, "store", CLI.Store)

	appCtx := &cli.Context{
		StoreKind: CLI.Store,
		ConfigDir: CLI.ConfigDir,
	}

	// keyring commands manage the credentials a postgres store would need
	if !strings.HasPrefix(command, "keyring") {
		store, err := cli.OpenStore(cli.StoreConfig{
			Kind:       CLI.Store,
			DBPath:     CLI.DB,
			Connection: CLI.Connection,
		})
		if err != nil {
			errors.Fatalf("failed to open %s history: %w", CLI.Store, err)
		}
		appCtx.Store = store
		defer store.Close()

		// init prepares the store itself
		if !strings.HasPrefix(command, "init") {
			if err := store.Load(); err != nil {
				errors.Fatal(err)
			}
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		if appCtx.Store != nil {
			appCtx.Store.Close()
		}
		errors.Fatal(err)
	}
}
