package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/dayshape/internal/constants"
)

var (
	// Logger is the process-wide logger; nil until Init
	Logger *log.Logger

	file *lumberjack.Logger
)

// Config locates the log file. With Debug set, records at debug level and
// above are also mirrored to Mirror (stderr when nil).
type Config struct {
	Debug     bool
	ConfigDir string
	Mirror    io.Writer
}

// Init opens the rotating log file under <ConfigDir>/logs.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	file = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}

	opts := log.Options{
		ReportTimestamp: true,
		Level:           log.WarnLevel,
		Prefix:          constants.AppName,
	}
	var writer io.Writer = file
	if cfg.Debug {
		mirror := cfg.Mirror
		if mirror == nil {
			mirror = os.Stderr
		}
		writer = io.MultiWriter(mirror, file)
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}

	Logger = log.NewWithOptions(writer, opts)
	return nil
}

// Path returns the active log file, or "" before Init
func Path() string {
	if file == nil {
		return ""
	}
	return file.Filename
}

// Close flushes and releases the log file.
func Close() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	Logger, file = nil, nil
	return err
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
