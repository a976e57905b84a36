// Package migrations embeds the SQLite schema for the slot store.
package migrations

import "embed"

// FS holds the migration files.
//
//go:embed *.sql
var FS embed.FS
