package migrations

import "embed"

// FS contains embedded SQLite migrations for reminder storage.
//
//go:embed *.sql
var FS embed.FS
