package migrations

import "embed"

// FS holds the versioned history schema for each SQL backend
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
