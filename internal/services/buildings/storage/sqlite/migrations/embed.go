package migrations

import "embed"

// FS contains embedded SQLite migrations for building storage.
//
//go:embed *.sql
var FS embed.FS
