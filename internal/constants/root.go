package constants

const (
	AppName            = "dayshape"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/dayshape"
	DefaultSQLitePath  = "~/.config/dayshape/history.db"
	Version            = "v0.1.0"

	// DateFormat is the calendar day format used for history records and export names (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// HistoryFileName is the fixed, relative JSON history file used by the default store
	HistoryFileName = "planner_history.json"

	// Export constants
	ExportFilePrefix = "daily_plan_"
	ExportFileSuffix = ".txt"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dayshape-"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "dayshape.log"

	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Store kinds
	StoreJSON     = "json"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	// Environment variables
	EnvDBConnection = "DAYSHAPE_DB_CONNECTION"
)
