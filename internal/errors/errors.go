package errors

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/dayshape/internal/cli"
	"github.com/julianstephens/dayshape/internal/keyring"
	"github.com/julianstephens/dayshape/internal/logger"
	"github.com/julianstephens/dayshape/internal/migration"
	"github.com/julianstephens/dayshape/internal/summary"
)

// hints pairs failures the user can act on with the next step to take
var hints = []struct {
	err  error
	hint string
}{
	{summary.ErrNoEssential, "Pass --essential with the one task that matters today, or drop --export."},
	{keyring.ErrKeyringUnavailable, "Pass --connection without a password and keep the password in ~/.pgpass."},
	{cli.ErrNoFileBackups, "Back up a PostgreSQL history with pg_dump."},
	{migration.ErrSchemaTooNew, "Upgrade dayshape, or restore a backup taken before the upgrade."},
}

// Hint returns the suggested next step for err, or "" when there is none
func Hint(err error) string {
	for _, h := range hints {
		if goerrors.Is(err, h.err) {
			return h.hint
		}
	}
	return ""
}

// Format renders err with an "Error: " prefix, followed by its hint if it has one
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n" + hint
	}
	return msg
}

// Fatal logs err, prints it and exits with code 1. A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for an error built with fmt.Errorf, so %w keeps its hint
func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
